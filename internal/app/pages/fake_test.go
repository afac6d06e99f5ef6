package pages_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

type recordedCall struct {
	Method string
	Path   string
	Body   any
}

type handler func(body any) (any, error)

// fakeAPI answers calls by "METHOD path" and records every call it sees.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]handler
	calls  []recordedCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: make(map[string]handler)}
}

func (f *fakeAPI) on(method, path string, h handler) *fakeAPI {
	f.routes[method+" "+path] = h
	return f
}

func (f *fakeAPI) reply(method, path string, resp any) *fakeAPI {
	return f.on(method, path, func(any) (any, error) { return resp, nil })
}

func (f *fakeAPI) fail(method, path string, err error) *fakeAPI {
	return f.on(method, path, func(any) (any, error) { return nil, err })
}

func (f *fakeAPI) Call(ctx context.Context, method, path string, body, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: method, Path: path, Body: body})
	h, ok := f.routes[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return fmt.Errorf("unexpected call %s %s", method, path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := h(body)
	if err != nil {
		return err
	}
	if out == nil || resp == nil {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeAPI) Upload(ctx context.Context, path, _, _ string, content io.Reader, out any) error {
	raw, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	return f.Call(ctx, "UPLOAD", path, raw, out)
}

func (f *fakeAPI) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeAPI) callsTo(method, path string) []recordedCall {
	var out []recordedCall
	for _, c := range f.recorded() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

// bodyJSON renders a recorded request body the way the gateway would send it.
func bodyJSON(body any) string {
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return string(raw)
}
