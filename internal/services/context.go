package services

import "context"

type contextKey string

const (
	mergeIDKey contextKey = "merge_id"
	stageKey   contextKey = "stage"
)

// WithMergeID annotates context with the identifier of the current merge run.
func WithMergeID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, mergeIDKey, id)
}

// MergeIDFromContext extracts the merge run identifier if present.
func MergeIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(mergeIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
