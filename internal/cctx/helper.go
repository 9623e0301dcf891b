package cctx

import "context"

func WithValues(parent context.Context, values ...interface{}) (ctx context.Context) {
	if len(values)%2 != 0 {
		panic("uneven")
	}

	ctx = parent
	for i := 0; i < len(values); i++ {
		key := values[i]
		value := values[i+1]
		i++

		ctx = context.WithValue(ctx, key, value)
	}
	return
}

// CallerID returns the authenticated user id, if the session resolver put one
// into the context.
func CallerID(ctx context.Context) (uid string, ok bool) {
	uid, ok = ctx.Value(UserID).(string)
	ok = ok && uid != ""
	return
}

func RequestIDOf(ctx context.Context) string {
	rid, _ := ctx.Value(RequestID).(string)
	return rid
}
