// Package sink provides the append-only line destinations dial observers
// render to.
package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Sink accepts human readable lines, one at a time, in order.
type Sink interface {
	Append(line string) error
}

// LogSink writes each line as a message on a go-kit log context.
type LogSink struct {
	ctx *log.Context
}

func NewLogSink(ctx *log.Context) *LogSink {
	return &LogSink{ctx: ctx}
}

func (s *LogSink) Append(line string) error {
	return s.ctx.Log("message", line)
}

// WriterSink writes newline terminated lines to w.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, line)
	return errors.Wrap(err, "sink: failed to write line")
}

// Multi appends every line to each of its sinks. All sinks are attempted
// even if one fails.
type Multi []Sink

func (m Multi) Append(line string) error {
	var result *multierror.Error
	for _, s := range m {
		if err := s.Append(line); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
