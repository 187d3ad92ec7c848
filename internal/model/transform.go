package model

import "context"

// TransformStore commits a transform result onto a memo together with the
// credit decrement, as a single transaction. When ConsumeCredit is set and
// the user has no credits left the whole transaction fails with
// ErrQuotaExhausted, so a lost race never over-charges.
type TransformStore interface {
	Apply(ctx context.Context, params ApplyTransformParams) (Memo, User, error)
}

// ApplyTransformParams contains parameters to commit a transform.
type ApplyTransformParams struct {
	MemoID        int64
	UserID        int64
	ConsumeCredit bool
	Result        TransformResult
}
