package uow

import (
	"context"
	"errors"

	"hotelstay/internal/domain/availability"
	"hotelstay/internal/domain/booking"
	"hotelstay/internal/domain/hotels"
)

var (
	ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")
	// ErrConcurrentUpdate is returned by repositories when an aggregate was
	// saved from a stale version.
	ErrConcurrentUpdate = errors.New("uow: concurrent update detected")
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Hotels() hotels.Repository
	Availability() availability.Repository
	Bookings() booking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

type TxOptions struct {
	ReadOnly bool
}

type ctxKey struct{}

func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, ctxKey{}, unit)
}

func FromContext(ctx context.Context) (UnitOfWork, bool) {
	unit, ok := ctx.Value(ctxKey{}).(UnitOfWork)
	return unit, ok
}

// Run executes fn inside the unit of work found in ctx, or inside a new one
// begun from factory which is committed on success and rolled back otherwise.
func Run(ctx context.Context, factory UoWFactory, opts TxOptions, fn func(ctx context.Context, unit UnitOfWork) error) error {
	if unit, ok := FromContext(ctx); ok {
		return fn(ctx, unit)
	}
	if factory == nil {
		return ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return err
	}
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		ctx = injector.InjectContext(ctx)
	}
	ctx = ContextWithUnitOfWork(ctx, unit)
	if err := fn(ctx, unit); err != nil {
		if rbErr := unit.Rollback(ctx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	if opts.ReadOnly {
		return unit.Rollback(ctx)
	}
	return unit.Commit(ctx)
}
