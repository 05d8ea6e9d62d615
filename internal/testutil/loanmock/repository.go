// Package loanmock provides a func-field test double for the loan
// repository.
package loanmock

import (
	"context"
	"errors"

	domain "agrifin-backend/internal/domain/loan"
)

var errNotImplemented = errors.New("loanmock: not implemented")

type Repository struct {
	CreateFn                  func(ctx context.Context, l *domain.Loan) error
	CreateRepaymentsFn        func(ctx context.Context, rs []domain.Repayment) error
	GetByApplicationIDFn      func(ctx context.Context, applicationID uint64) (*domain.Loan, error)
	ListByApplicationIDsFn    func(ctx context.Context, applicationIDs []uint64) ([]domain.Loan, error)
	ListRepaymentsFn          func(ctx context.Context, loanID uint64) ([]domain.Repayment, error)
	ListRepaymentsByLoanIDsFn func(ctx context.Context, loanIDs []uint64, limit int) ([]domain.Repayment, error)
	CountLoansFn              func(ctx context.Context) (int64, error)
	SumDisbursedFn            func(ctx context.Context) (float64, error)
	CountRepaymentsByStatusFn func(ctx context.Context) (map[domain.RepaymentStatus]int64, error)
}

func (m *Repository) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return errNotImplemented
}

func (m *Repository) CreateRepayments(ctx context.Context, rs []domain.Repayment) error {
	if m.CreateRepaymentsFn != nil {
		return m.CreateRepaymentsFn(ctx, rs)
	}
	return errNotImplemented
}

func (m *Repository) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Loan, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errNotImplemented
}

func (m *Repository) ListByApplicationIDs(ctx context.Context, applicationIDs []uint64) ([]domain.Loan, error) {
	if m.ListByApplicationIDsFn != nil {
		return m.ListByApplicationIDsFn(ctx, applicationIDs)
	}
	return nil, errNotImplemented
}

func (m *Repository) ListRepayments(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	if m.ListRepaymentsFn != nil {
		return m.ListRepaymentsFn(ctx, loanID)
	}
	return nil, errNotImplemented
}

func (m *Repository) ListRepaymentsByLoanIDs(ctx context.Context, loanIDs []uint64, limit int) ([]domain.Repayment, error) {
	if m.ListRepaymentsByLoanIDsFn != nil {
		return m.ListRepaymentsByLoanIDsFn(ctx, loanIDs, limit)
	}
	return nil, errNotImplemented
}

func (m *Repository) CountLoans(ctx context.Context) (int64, error) {
	if m.CountLoansFn != nil {
		return m.CountLoansFn(ctx)
	}
	return 0, errNotImplemented
}

func (m *Repository) SumDisbursed(ctx context.Context) (float64, error) {
	if m.SumDisbursedFn != nil {
		return m.SumDisbursedFn(ctx)
	}
	return 0, errNotImplemented
}

func (m *Repository) CountRepaymentsByStatus(ctx context.Context) (map[domain.RepaymentStatus]int64, error) {
	if m.CountRepaymentsByStatusFn != nil {
		return m.CountRepaymentsByStatusFn(ctx)
	}
	return nil, errNotImplemented
}
