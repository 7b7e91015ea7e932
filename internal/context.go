package internal

import "context"

type ctxKey uint8

const (
	ctxEncryptHistory ctxKey = iota
	ctxClearHistory
	ctxSharedProps
)

// SetEncryptHistory marks the current response's history entry for
// client-side encryption. The flag rides the request context so one
// Adapter serves concurrent requests without leaking state; pass the
// returned context back into the request before rendering:
//
//	r = r.WithContext(internal.SetEncryptHistory(r.Context()))
func SetEncryptHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxEncryptHistory, true)
}

// SetClearHistory instructs the client to wipe its encrypted history
// state, typically on logout.
func SetClearHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxClearHistory, true)
}

// ShareProp attaches a prop to the current request only, merged after the
// adapter-wide shared props. The bag in the context is copied on write so
// derived contexts never observe each other's additions.
func ShareProp(ctx context.Context, key string, value any) context.Context {
	existing, _ := ctx.Value(ctxSharedProps).(Props)
	merged := make(Props, len(existing)+1)
	for k, v := range existing {
		merged[k] = v
	}
	merged[key] = value
	return context.WithValue(ctx, ctxSharedProps, merged)
}

func encryptHistoryFrom(ctx context.Context, fallback bool) bool {
	if v, ok := ctx.Value(ctxEncryptHistory).(bool); ok {
		return v
	}
	return fallback
}

func clearHistoryFrom(ctx context.Context) bool {
	v, _ := ctx.Value(ctxClearHistory).(bool)
	return v
}

func sharedPropsFrom(ctx context.Context) Props {
	props, _ := ctx.Value(ctxSharedProps).(Props)
	return props
}
