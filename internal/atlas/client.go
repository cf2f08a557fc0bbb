package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const maxErrorBody = 512

type httpClient struct {
	endpoint string
	token    string
	client   *http.Client
}

func (c *httpClient) Name() string {
	if u, err := url.Parse(c.endpoint); err == nil && u.Host != "" {
		return fmt.Sprintf("Atlas (%s)", u.Host)
	}
	return "Atlas"
}

func (c *httpClient) Chat(ctx context.Context, message string) (Response, error) {
	payload := map[string]string{
		"token":   c.token,
		"message": message,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("atlas request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("atlas read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return Response{}, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !parsed.OK {
		return Response{}, ErrRejected
	}
	return parsed, nil
}
