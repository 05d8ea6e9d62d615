package uow

import (
	"context"

	"agrifin-backend/internal/domain/application"
	"agrifin-backend/internal/domain/loan"
)

type Repos struct {
	Applications application.Repository
	Loans        loan.Repository
}

// UnitOfWork runs fn with repositories bound to one database transaction;
// any error rolls the whole transaction back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinApplicationTx locks the application row first, then passes it in.
	WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r Repos, a *application.LoanApplication) error) error
}
