package console

import "context"

type decisionKey struct{}

// WithDecision records the caller's yes/no answer for the destructive
// operation the request is about to dispatch.
func WithDecision(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, decisionKey{}, confirmed)
}

func DecisionFromContext(ctx context.Context) bool {
	confirmed, ok := ctx.Value(decisionKey{}).(bool)
	return ok && confirmed
}

// ContextConfirmer reads the confirmation decision the transport layer
// stored on the request context. Without an explicit decision the
// answer is no.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, prompt string) bool {
	return DecisionFromContext(ctx)
}
