package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("loan not found")

type RepaymentStatus string

const (
	RepaymentPending RepaymentStatus = "pending"
	RepaymentPaid    RepaymentStatus = "paid"
	RepaymentOverdue RepaymentStatus = "overdue"
)

// Loan is created exactly once, when its application is approved.
// Immutable afterwards except DisbursedAt, which an external disbursement
// process sets.
type Loan struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID  uint64          `gorm:"column:application_id;not null;uniqueIndex:ux_loans_application" json:"application_id"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(14,2)" json:"amount"`
	InterestRate   float64         `gorm:"column:interest_rate;type:decimal(6,4)" json:"interest_rate"`
	DurationMonths int             `gorm:"column:duration_months" json:"duration_months"`
	MonthlyPayment decimal.Decimal `gorm:"column:monthly_payment;type:decimal(14,2)" json:"monthly_payment"`
	DisbursedAt    *time.Time      `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Repayments []Repayment `gorm:"foreignKey:LoanID" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Repayment is a single installment, created pending in one batch with its
// loan. Transitions to paid/overdue are driven by an external servicing
// process.
type Repayment struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"id"`
	LoanID    uint64          `gorm:"column:loan_id;not null;index" json:"loan_id"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(14,2)" json:"amount"`
	DueDate   time.Time       `gorm:"column:due_date" json:"due_date"`
	Status    RepaymentStatus `gorm:"column:status;size:20;default:'pending'" json:"status"`
	PaidAt    *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }
