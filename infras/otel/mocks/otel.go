package mocks

import (
	"context"
	"sync"

	"billiard/infras/otel"
)

type otelImpl struct{}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// Shutdown implements otel.Otel.
func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

// NewOtel returns a tracer that records nothing, for tests.
func NewOtel() otel.Otel {
	return &otelImpl{}
}

// RecordingOtel keeps every span it opens so tests can assert on traced errors and events.
type RecordingOtel struct {
	mu    sync.Mutex
	spans []*Span
}

func NewRecordingOtel() *RecordingOtel {
	return &RecordingOtel{}
}

// NewScope implements otel.Otel.
func (o *RecordingOtel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	span := &Span{Name: spanName}

	o.mu.Lock()
	o.spans = append(o.spans, span)
	o.mu.Unlock()

	return ctx, &scopeImpl{mu: &o.mu, span: span}
}

// Shutdown implements otel.Otel.
func (o *RecordingOtel) Shutdown(_ context.Context) error {
	return nil
}

// Span returns the first span opened with the given name, or nil.
func (o *RecordingOtel) Span(name string) *Span {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, span := range o.spans {
		if span.Name == name {
			return span
		}
	}

	return nil
}
