package mocks

import (
	"sync"

	"billiard/infras/otel"
)

// Span is what a recording scope saw between NewScope and End.
type Span struct {
	Name   string
	Events []string
	Errors []error
	Ended  bool
}

type scopeImpl struct {
	mu   *sync.Mutex
	span *Span
}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(name string) {
	s.record(func(span *Span) { span.Events = append(span.Events, name) })
}

// End implements otel.Scope.
func (s *scopeImpl) End() {
	s.record(func(span *Span) { span.Ended = true })
}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(_ string, _ any) {}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(_ map[string]any) {}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(err error) {
	s.record(func(span *Span) { span.Errors = append(span.Errors, err) })
}

// TraceIfError implements otel.Scope.
func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) record(fn func(span *Span)) {
	if s.span == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.span)
}

// NewScope returns a scope that records nothing.
func NewScope() otel.Scope {
	return &scopeImpl{}
}
