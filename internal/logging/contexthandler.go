package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns the editing state to attach to each record, such as
// the name of the active shape. It is called once per record.
type ContextProvider func() []slog.Attr

// ContextHandler adds the provider's attributes to every record. An attribute
// is skipped when the record, or the logger through WithAttrs, already sets
// the same key, so an explicit "shape" passed at the call site wins.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
	preset   map[string]bool
}

// NewContextHandler wraps inner with provider.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{inner: inner, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider == nil {
		return h.inner.Handle(ctx, r)
	}
	attrs := h.provider()
	if len(attrs) == 0 {
		return h.inner.Handle(ctx, r)
	}

	set := make(map[string]bool, r.NumAttrs()+len(h.preset))
	for k := range h.preset {
		set[k] = true
	}
	r.Attrs(func(a slog.Attr) bool {
		set[a.Key] = true
		return true
	})
	for _, a := range attrs {
		if !set[a.Key] {
			r.AddAttrs(a)
			set[a.Key] = true
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	preset := make(map[string]bool, len(h.preset)+len(attrs))
	for k := range h.preset {
		preset[k] = true
	}
	for _, a := range attrs {
		preset[a.Key] = true
	}
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), provider: h.provider, preset: preset}
}

// WithGroup nests later attributes. Provider attributes still go into the
// group, matching how slog places record attributes.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	// keys inside the group no longer collide with outer ones
	return &ContextHandler{inner: h.inner.WithGroup(name), provider: h.provider}
}
