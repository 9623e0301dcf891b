package cctx

type ContextKey string

var (
	UserID    ContextKey = "sb:uid"
	RequestID ContextKey = "sb:rid"
)
