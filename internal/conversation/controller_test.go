package conversation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/buildvision/internal/atlas"
)

type fakeClient struct {
	resp  atlas.Response
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (f *fakeClient) Chat(ctx context.Context, message string) (atlas.Response, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.resp, f.err
}

func (f *fakeClient) Name() string { return "fake" }

func successResponse() atlas.Response {
	return atlas.Response{
		OK:     true,
		Answer: "42 [1]",
		Sources: []atlas.Source{
			{Index: 1, Manufacturer: "Acme", Title: "Spec", URL: "https://x"},
		},
		ManufacturersReferenced: []string{"Acme"},
	}
}

func TestSendSuccessAppendsAnswer(t *testing.T) {
	client := &fakeClient{resp: successResponse()}
	c := New(client)

	state, ok := c.Send(context.Background(), "answer?")
	require.True(t, ok)
	assert.False(t, state.Pending)
	assert.Empty(t, state.Err)
	require.Len(t, state.Messages, 2)

	assert.Equal(t, RoleUser, state.Messages[0].Role)
	assert.Equal(t, "answer?", state.Messages[0].Content)

	reply := state.Messages[1]
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "42 [1]", reply.Content)
	assert.Len(t, reply.Sources, 1)
	assert.Equal(t, []string{"Acme"}, reply.Manufacturers)
}

func TestSendTrimsQuestion(t *testing.T) {
	c := New(&fakeClient{resp: successResponse()})
	state, ok := c.Send(context.Background(), "   answer?\n")
	require.True(t, ok)
	assert.Equal(t, "answer?", state.Messages[0].Content)
}

func TestSendFailureRollsBackQuestion(t *testing.T) {
	c := New(&fakeClient{err: errors.New("dial tcp: connection refused")})

	state, ok := c.Send(context.Background(), "hello")
	require.True(t, ok)
	assert.False(t, state.Pending)
	assert.Equal(t, DefaultErrorText, state.Err)
	for _, msg := range state.Messages {
		assert.NotEqual(t, "hello", msg.Content)
	}
	assert.Empty(t, state.Messages)
}

func TestFailureKeepsEarlierTurns(t *testing.T) {
	client := &fakeClient{resp: successResponse()}
	c := New(client)
	_, ok := c.Send(context.Background(), "first")
	require.True(t, ok)

	client.err = &atlas.StatusError{StatusCode: 502, Status: "502 Bad Gateway"}
	state, ok := c.Send(context.Background(), "second")
	require.True(t, ok)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "first", state.Messages[0].Content)
	assert.Equal(t, RoleAssistant, state.Messages[1].Role)
	assert.NotEmpty(t, state.Err)
}

func TestNextSendClearsError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	c := New(client)
	state, _ := c.Send(context.Background(), "hello")
	require.NotEmpty(t, state.Err)

	client.err = nil
	client.resp = successResponse()
	turn, ok := c.Begin("again")
	require.True(t, ok)
	assert.Empty(t, c.Snapshot().Err)
	c.Settle(turn, client.resp, nil)
}

func TestBlankInputIsIgnored(t *testing.T) {
	client := &fakeClient{resp: successResponse()}
	c := New(client)

	for _, text := range []string{"", "   ", "\n\t"} {
		state, ok := c.Send(context.Background(), text)
		assert.False(t, ok)
		assert.Empty(t, state.Messages)
		assert.False(t, state.Pending)
	}
	assert.Equal(t, int32(0), client.calls.Load())
}

func TestBeginWhilePendingIsNoop(t *testing.T) {
	c := New(&fakeClient{resp: successResponse()})
	turn, ok := c.Begin("first")
	require.True(t, ok)
	before := c.Snapshot()

	_, ok = c.Begin("second")
	assert.False(t, ok)
	after := c.Snapshot()
	assert.Equal(t, len(before.Messages), len(after.Messages))
	assert.True(t, after.Pending)

	c.Settle(turn, successResponse(), nil)
	assert.False(t, c.Snapshot().Pending)
}

func TestConcurrentSendsIssueOneRequest(t *testing.T) {
	client := &fakeClient{resp: successResponse(), gate: make(chan struct{})}
	c := New(client)

	const senders = 16
	var wg sync.WaitGroup
	var accepted atomic.Int32
	started := make(chan struct{})
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-started
			if _, ok := c.Send(context.Background(), "burst"); ok {
				accepted.Add(1)
			}
		}()
	}
	close(started)

	require.Eventually(t, func() bool { return client.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), client.calls.Load())
	close(client.gate)
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	state := c.Snapshot()
	assert.Len(t, state.Messages, 2)
	assert.False(t, state.Pending)
}

func TestSettleIgnoresStaleTurn(t *testing.T) {
	c := New(&fakeClient{})
	turn, ok := c.Begin("one")
	require.True(t, ok)
	c.Settle(turn, successResponse(), nil)

	state := c.Settle(turn, atlas.Response{}, errors.New("late"))
	assert.Len(t, state.Messages, 2)
	assert.Empty(t, state.Err)
}

func TestMissingListsDefaultToEmpty(t *testing.T) {
	c := New(&fakeClient{resp: atlas.Response{OK: true, Answer: "plain"}})
	state, ok := c.Send(context.Background(), "q")
	require.True(t, ok)
	require.Len(t, state.Messages, 2)
	reply := state.Messages[1]
	assert.NotNil(t, reply.Sources)
	assert.Empty(t, reply.Sources)
	assert.NotNil(t, reply.Manufacturers)
	assert.Empty(t, reply.Manufacturers)
}

func TestSubscribersSeeEveryTransition(t *testing.T) {
	c := New(&fakeClient{resp: successResponse()})
	var seen []State
	cancel := c.Subscribe(func(s State) { seen = append(seen, s) })

	c.Send(context.Background(), "answer?")
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Pending)
	assert.Len(t, seen[0].Messages, 1)
	assert.False(t, seen[1].Pending)
	assert.Len(t, seen[1].Messages, 2)

	cancel()
	c.Send(context.Background(), "again")
	assert.Len(t, seen, 2)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New(&fakeClient{resp: successResponse()})
	c.Send(context.Background(), "answer?")

	state := c.Snapshot()
	state.Messages[0].Content = "mutated"
	state.Messages = state.Messages[:0]

	assert.Equal(t, "answer?", c.Snapshot().Messages[0].Content)
}

func TestInputIsClearedOnBegin(t *testing.T) {
	c := New(&fakeClient{resp: successResponse()})
	c.SetInput("draft")
	assert.Equal(t, "draft", c.Snapshot().Input)

	turn, ok := c.Begin(c.Snapshot().Input)
	require.True(t, ok)
	assert.Empty(t, c.Snapshot().Input)
	c.Settle(turn, successResponse(), nil)
}

func TestUnsetSuccessFlagIsAFailure(t *testing.T) {
	client := &fakeClient{resp: atlas.Response{OK: false, Answer: "partial"}}
	c := New(client)

	state, ok := c.Send(context.Background(), "chiller")
	require.True(t, ok)
	assert.Empty(t, state.Messages)
	assert.Equal(t, DefaultErrorText, state.Err)
	assert.False(t, state.Pending)
}

func TestPendingTracksInFlightTurn(t *testing.T) {
	c := New(&fakeClient{resp: successResponse()})
	assert.False(t, c.Pending())

	turn, ok := c.Begin("chiller")
	require.True(t, ok)
	assert.True(t, c.Pending())

	c.Settle(turn, successResponse(), nil)
	assert.False(t, c.Pending())
}

func TestOptions(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := New(&fakeClient{err: errors.New("down")},
		WithErrorText("Atlas is offline."),
		WithClock(func() time.Time { return fixed }),
		WithLogger(nil),
	)
	state, _ := c.Send(context.Background(), "q")
	assert.Equal(t, "Atlas is offline.", state.Err)

	c2 := New(&fakeClient{resp: successResponse()}, WithClock(func() time.Time { return fixed }))
	state, _ = c2.Send(context.Background(), "q")
	assert.Equal(t, fixed, state.Messages[0].At)
}
