package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Sink is a named log destination, e.g. the session log file or Graylog.
type Sink struct {
	Name    string
	Handler slog.Handler
}

// FanoutHandler writes each record to every sink enabled for its level.
// A failing sink does not stop the others; its failures are counted per sink
// name and the joined errors are returned.
type FanoutHandler struct {
	sinks    []Sink
	failures *failureCounts
}

type failureCounts struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *failureCounts) add(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[name]++
}

// NewFanoutHandler creates a handler over sinks. Sinks without a handler are
// dropped.
func NewFanoutHandler(sinks ...Sink) *FanoutHandler {
	valid := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s.Handler != nil {
			valid = append(valid, s)
		}
	}
	return &FanoutHandler{
		sinks:    valid,
		failures: &failureCounts{counts: make(map[string]int)},
	}
}

// Sinks returns the sink names in write order.
func (f *FanoutHandler) Sinks() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name
	}
	return names
}

// Failures returns how many records each sink failed to write. Clones made by
// WithAttrs and WithGroup share the counts.
func (f *FanoutHandler) Failures() map[string]int {
	f.failures.mu.Lock()
	defer f.failures.mu.Unlock()
	out := make(map[string]int, len(f.failures.counts))
	for name, n := range f.failures.counts {
		out[name] = n
	}
	return out
}

func (f *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if s.Handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range f.sinks {
		if !s.Handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handler.Handle(ctx, r.Clone()); err != nil {
			f.failures.add(s.Name)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f *FanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *FanoutHandler) derive(wrap func(slog.Handler) slog.Handler) *FanoutHandler {
	sinks := make([]Sink, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = Sink{Name: s.Name, Handler: wrap(s.Handler)}
	}
	return &FanoutHandler{sinks: sinks, failures: f.failures}
}
