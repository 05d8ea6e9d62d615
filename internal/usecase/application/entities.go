package application

import (
	"time"

	domain "agrifin-backend/internal/domain/application"

	"github.com/shopspring/decimal"
)

// SubmitInput is the typed submission payload; the HTTP boundary has
// already bound and validated the JSON shape.
type SubmitInput struct {
	UserID          uint64
	Age             int
	AnnualIncome    float64
	CreditScore     int
	AmountRequested float64
	DurationMonths  int

	EmploymentStatus string
	EducationLevel   string
	MaritalStatus    string
	LoanPurpose      string

	FarmingActivity       string
	FarmingLandHectares   *float64
	FarmingSeason         string
	FarmingEstimatedYield *float64
	FarmingLivestock      string
	FarmingNotes          string

	Language string
}

type StatusUpdateDTO struct {
	Status    domain.Status `json:"status"`
	Note      string        `json:"note"`
	UpdatedBy *uint64       `json:"updated_by,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type DocumentDTO struct {
	DocumentType domain.DocumentType `json:"document_type"`
	FileName     string              `json:"file_name"`
	UploadedAt   time.Time           `json:"uploaded_at"`
}

type ApplicationDTO struct {
	ID                  uint64            `json:"id"`
	Status              domain.Status     `json:"status"`
	Age                 int               `json:"age"`
	AnnualIncome        float64           `json:"annual_income"`
	CreditScore         int               `json:"credit_score"`
	AmountRequested     float64           `json:"loan_amount_requested"`
	DurationMonths      int               `json:"loan_duration_months"`
	EligibilityApproved *bool             `json:"eligibility_approved"`
	EligibilityReason   string            `json:"eligibility_reason"`
	RiskScore           *float64          `json:"risk_score"`
	RecommendedAmount   *decimal.Decimal  `json:"recommended_amount"`
	RejectionReason     string            `json:"rejection_reason,omitempty"`
	ReviewedAt          *time.Time        `json:"reviewed_at,omitempty"`
	StatusHistory       []StatusUpdateDTO `json:"status_history"`
	Documents           []DocumentDTO     `json:"documents"`
	CreatedAt           time.Time         `json:"created_at"`
}

// TransitionInput drives a reviewer-initiated status change. The loan
// terms are only consulted for approval; absent values fall back to the
// application's own figures.
type TransitionInput struct {
	ApplicationID  uint64
	Target         domain.Status
	Note           string
	ReviewerID     uint64
	Amount         *float64
	InterestRate   *float64
	DurationMonths *int
}

type TransitionDTO struct {
	ID              uint64            `json:"id"`
	Status          domain.Status     `json:"status"`
	StatusHistory   []StatusUpdateDTO `json:"status_history"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
}

type UpsertDocumentInput struct {
	ApplicationID uint64
	UserID        uint64
	DocumentType  domain.DocumentType
	FileName      string
	FilePath      string
}

type LoanDTO struct {
	ID             uint64          `json:"id"`
	ApplicationID  uint64          `json:"application_id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   float64         `json:"interest_rate"`
	DurationMonths int             `json:"duration_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	DisbursedAt    *time.Time      `json:"disbursed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type RepaymentDTO struct {
	LoanID  uint64          `json:"loan_id"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}
