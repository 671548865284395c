package app

import "context"

// Optimistic runs local immediately, then remote. When remote fails the
// rollback returned by local is invoked before the error is returned.
func Optimistic[T any](ctx context.Context, local func() (rollback func()), remote func(context.Context) (T, error)) (T, error) {
	rollback := local()
	result, err := remote(ctx)
	if err != nil {
		if rollback != nil {
			rollback()
		}
		var zero T
		return zero, err
	}
	return result, nil
}
