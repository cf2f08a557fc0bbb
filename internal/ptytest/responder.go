package ptytest

import (
	"bytes"
	"io"
)

// queryReplies answers the terminal queries termenv sends on startup so the
// program does not wait for a real terminal.
var queryReplies = []struct {
	query, reply string
}{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

type queryResponder struct {
	w    io.Writer
	tail []byte
}

func newQueryResponder(w io.Writer) *queryResponder {
	return &queryResponder{w: w}
}

// Process scans chunk, together with the tail of earlier chunks, for
// queries and writes their replies.
func (r *queryResponder) Process(chunk []byte) {
	r.tail = append(r.tail, chunk...)
	for r.answerOne() {
	}
	if len(r.tail) > 256 {
		r.tail = r.tail[len(r.tail)-64:]
	}
}

func (r *queryResponder) answerOne() bool {
	for _, q := range queryReplies {
		idx := bytes.Index(r.tail, []byte(q.query))
		if idx < 0 {
			continue
		}
		r.tail = r.tail[idx+len(q.query):]
		_, _ = io.WriteString(r.w, q.reply)
		return true
	}
	return false
}
