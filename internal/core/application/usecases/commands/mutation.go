package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// runOrderMutation executes mutate inside a fresh unit of work and commits on
// success. When the optimistic version check fails with
// ports.ErrConcurrentModification, the whole read-validate-write cycle is
// retried exactly once against a fresh transaction; a second collision is
// surfaced to the caller.
//
// mutate receives the transactional unit of work and returns the aggregate
// plus a write flag. A false write flag signals an idempotent no-op: the
// transaction is rolled back, nothing is persisted, and the loaded aggregate
// is returned unchanged.
func runOrderMutation(
	ctx context.Context,
	factory OrderUoWFactory,
	mutate func(ctx context.Context, uow OrderUoW) (*order.Order, bool, error),
) (*order.Order, error) {
	const attempts = 2

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		updated, err := runOrderMutationOnce(ctx, factory, mutate)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, ports.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func runOrderMutationOnce(
	ctx context.Context,
	factory OrderUoWFactory,
	mutate func(ctx context.Context, uow OrderUoW) (*order.Order, bool, error),
) (*order.Order, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, write, err := mutate(ctx, uow)
	if err != nil {
		return nil, err
	}
	if !write {
		return aggregate, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
