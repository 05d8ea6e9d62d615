// Package portfolio aggregates lending figures for the MFI dashboard.
package portfolio

import (
	"context"

	"agrifin-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalLoans        int64           `json:"total_loans"`
	TotalDisbursed    decimal.Decimal `json:"total_disbursed"`
	PendingRepayments int64           `json:"pending_repayments"`
	PaidRepayments    int64           `json:"paid_repayments"`
	OverdueRepayments int64           `json:"overdue_repayments"`
}

type Usecase struct {
	loans loan.Repository
}

func NewUsecase(loans loan.Repository) *Usecase {
	return &Usecase{loans: loans}
}

func (u *Usecase) Summary(ctx context.Context) (*Summary, error) {
	total, err := u.loans.CountLoans(ctx)
	if err != nil {
		return nil, err
	}
	disbursed, err := u.loans.SumDisbursed(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := u.loans.CountRepaymentsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalLoans:        total,
		TotalDisbursed:    decimal.NewFromFloat(disbursed).Round(2),
		PendingRepayments: byStatus[loan.RepaymentPending],
		PaidRepayments:    byStatus[loan.RepaymentPaid],
		OverdueRepayments: byStatus[loan.RepaymentOverdue],
	}, nil
}
