// Package contextio stops readers and writers once their context is done.
// Based on https://github.com/dolmen-go/contextio
package contextio

import (
	"context"
	"io"
)

type writer struct {
	ctx context.Context
	w   io.Writer
}

// NewWriter wraps an io.Writer so that Write fails with ctx.Err() once ctx is done.
// A Write already in progress is not interrupted.
func NewWriter(ctx context.Context, w io.Writer) io.Writer {
	if w, ok := w.(*writer); ok && ctx == w.ctx {
		return w
	}
	return &writer{ctx: ctx, w: w}
}

func (w *writer) Write(p []byte) (n int, err error) {
	select {
	case <-w.ctx.Done():
		return 0, w.ctx.Err()
	default:
		return w.w.Write(p)
	}
}

type reader struct {
	ctx context.Context
	r   io.Reader
}

// NewReader wraps an io.Reader so that Read fails with ctx.Err() once ctx is done.
// A Read already in progress is not interrupted.
func NewReader(ctx context.Context, r io.Reader) io.Reader {
	if r, ok := r.(*reader); ok && ctx == r.ctx {
		return r
	}
	return &reader{ctx: ctx, r: r}
}

func (r *reader) Read(p []byte) (n int, err error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
		return r.r.Read(p)
	}
}
