// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"io"
	"sync"
)

// Call is one recorded render.
type Call struct {
	Name string
	Data any
}

// Recorder is a [Renderer] that remembers what it was asked to render and
// writes only the page name. Handler tests assert on the captured view model.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

var _ Renderer = (*Recorder)(nil)

func (r *Recorder) Render(writer io.Writer, name string, data any) error {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Data: data})
	r.mu.Unlock()

	_, err := io.WriteString(writer, name)
	return err
}

// Last returns the most recent call, or the zero Call when nothing rendered.
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
