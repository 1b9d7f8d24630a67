package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	componentKey contextKey = "component"
)

// WithRunID annotates context with the organize run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(runIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithComponent annotates context with the active component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(componentKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
