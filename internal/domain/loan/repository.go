package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	// CreateRepayments inserts the full schedule in one batch.
	CreateRepayments(ctx context.Context, rs []Repayment) error
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Loan, error)
	ListByApplicationIDs(ctx context.Context, applicationIDs []uint64) ([]Loan, error)
	ListRepayments(ctx context.Context, loanID uint64) ([]Repayment, error)
	ListRepaymentsByLoanIDs(ctx context.Context, loanIDs []uint64, limit int) ([]Repayment, error)

	// Portfolio aggregates
	CountLoans(ctx context.Context) (int64, error)
	SumDisbursed(ctx context.Context) (float64, error)
	CountRepaymentsByStatus(ctx context.Context) (map[RepaymentStatus]int64, error)
}
