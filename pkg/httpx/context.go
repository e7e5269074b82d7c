package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's ID. The auth middleware
// sets it; the rate limiter reads it for per-user limits.
const CtxKeyUserID ctxKey = "user_id"

func userIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
