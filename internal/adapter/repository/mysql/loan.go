package mysql

import (
	"context"

	domain "agrifin-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) CreateRepayments(ctx context.Context, rs []domain.Repayment) error {
	if len(rs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rs).Error
}

func (r *LoanRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Loan, error) {
	var out domain.Loan
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByApplicationIDs(ctx context.Context, applicationIDs []uint64) ([]domain.Loan, error) {
	if len(applicationIDs) == 0 {
		return nil, nil
	}
	var out []domain.Loan
	res := r.db.WithContext(ctx).
		Where("application_id IN ?", applicationIDs).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListRepayments(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	var out []domain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListRepaymentsByLoanIDs(ctx context.Context, loanIDs []uint64, limit int) ([]domain.Repayment, error) {
	if len(loanIDs) == 0 {
		return nil, nil
	}
	var out []domain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanIDs).
		Order("due_date ASC, id ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountLoans(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&domain.Loan{}).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) SumDisbursed(ctx context.Context) (float64, error) {
	var total float64
	res := r.db.WithContext(ctx).
		Model(&domain.Loan{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *LoanRepository) CountRepaymentsByStatus(ctx context.Context) (map[domain.RepaymentStatus]int64, error) {
	var rows []struct {
		Status domain.RepaymentStatus
		N      int64
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Repayment{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[domain.RepaymentStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
