// Package uowmock provides an in-memory UnitOfWork that runs the callback
// with caller-supplied repositories. It does not emulate rollback; tests
// assert that an error from fn propagates unchanged.
package uowmock

import (
	"context"

	domain "agrifin-backend/internal/domain/application"
	"agrifin-backend/internal/domain/uow"
)

type UoW struct {
	Repos uow.Repos
	// GetForUpdate backs WithinApplicationTx's row lock; defaults to the
	// Applications repo's GetByIDForUpdate.
	GetForUpdate func(ctx context.Context, id uint64) (*domain.LoanApplication, error)
	// TxErr short-circuits every Within* call when set.
	TxErr error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.TxErr != nil {
		return m.TxErr
	}
	return fn(m.Repos)
}

func (m *UoW) WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r uow.Repos, a *domain.LoanApplication) error) error {
	if m.TxErr != nil {
		return m.TxErr
	}
	get := m.GetForUpdate
	if get == nil {
		get = m.Repos.Applications.GetByIDForUpdate
	}
	a, err := get(ctx, applicationID)
	if err != nil {
		return err
	}
	return fn(m.Repos, a)
}
