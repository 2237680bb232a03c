// Package pipeline implements the guarded procedure chain behind the RPC
// surface. A procedure is a decode step, an ordered list of guards and a
// terminal handler. Each guard either calls its continuation exactly once
// with the same or an enriched context, or terminates the chain with a
// classified failure — never both.
package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/quill/internal/domain"
)

var tracer = otel.Tracer("pipeline")

// Handler is the terminal stage of a procedure. It runs only after every
// guard has forwarded the request.
type Handler func(ctx context.Context, input any) (any, error)

// Guard wraps a Handler. Implementations must call next at most once and
// must not both call next and return an error of their own.
type Guard func(ctx context.Context, input any, next Handler) (any, error)

// DecodeFunc turns a raw request payload into the procedure's typed input.
// It runs before any guard so that guards can rely on validated fields.
type DecodeFunc func(raw []byte) (any, error)

// Procedure binds a decode step, guards and a terminal handler.
type Procedure struct {
	decode  DecodeFunc
	guards  []Guard
	handler Handler
}

// NewProcedure builds a procedure. Guards run in the order given; a nil
// decode means the procedure takes no input.
func NewProcedure(decode DecodeFunc, handler Handler, guards ...Guard) *Procedure {
	return &Procedure{
		decode:  decode,
		guards:  guards,
		handler: handler,
	}
}

// Invoke decodes raw, then folds the guard chain over the terminal handler.
func (p *Procedure) Invoke(ctx context.Context, raw []byte) (any, error) {
	var input any
	if p.decode != nil {
		decoded, err := p.decode(raw)
		if err != nil {
			return nil, err
		}
		input = decoded
	}

	next := p.handler
	for i := len(p.guards) - 1; i >= 0; i-- {
		guard := p.guards[i]
		inner := next
		next = func(ctx context.Context, input any) (any, error) {
			return guard(ctx, input, inner)
		}
	}

	return next(ctx, input)
}

// Registry maps operation names to procedures. It is built once during
// initialization and never mutated afterwards.
type Registry struct {
	procedures map[string]*Procedure
}

func NewRegistry(procedures map[string]*Procedure) *Registry {
	owned := make(map[string]*Procedure, len(procedures))
	for name, procedure := range procedures {
		owned[name] = procedure
	}
	return &Registry{procedures: owned}
}

// Dispatch invokes the procedure registered under op.
func (r *Registry) Dispatch(ctx context.Context, op string, raw []byte) (any, error) {
	ctx, span := tracer.Start(ctx, "Pipeline.Registry.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("procedure", op))

	procedure, ok := r.procedures[op]
	if !ok {
		return nil, domain.NotFoundError{Resource: "procedure " + op}
	}

	result, err := procedure.Invoke(ctx, raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}
