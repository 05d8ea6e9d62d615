package application

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusUnderReview        Status = "under_review"
	StatusDocumentsRequested Status = "documents_requested"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
)

// ReviewerStatuses are the targets a reviewer may set; submission is the
// only way into pending.
var ReviewerStatuses = []Status{StatusUnderReview, StatusDocumentsRequested, StatusApproved, StatusRejected}

func ValidReviewerStatus(s Status) bool {
	for _, v := range ReviewerStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// LoanApplication holds the farmer's raw inputs, the ML outputs captured
// once at submission time, and the review workflow fields.
type LoanApplication struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	UserID uint64 `gorm:"column:user_id;index:idx_applications_user" json:"user_id"`

	// Applicant inputs mapped to model features
	Age               int     `gorm:"column:age" json:"age"`
	AnnualIncome      float64 `gorm:"column:annual_income;type:decimal(14,2)" json:"annual_income"`
	CreditScore       int     `gorm:"column:credit_score" json:"credit_score"`
	AmountRequested   float64 `gorm:"column:loan_amount_requested;type:decimal(14,2)" json:"loan_amount_requested"`
	DurationMonths    int     `gorm:"column:loan_duration_months" json:"loan_duration_months"`
	EmploymentStatus  string  `gorm:"column:employment_status;size:30" json:"employment_status"`
	EducationLevel    string  `gorm:"column:education_level;size:30" json:"education_level"`
	MaritalStatus     string  `gorm:"column:marital_status;size:20" json:"marital_status"`
	LoanPurpose       string  `gorm:"column:loan_purpose;size:50" json:"loan_purpose"`

	// Agricultural context
	FarmingActivity       string   `gorm:"column:farming_crops_or_activity;size:300" json:"farming_crops_or_activity"`
	FarmingLandHectares   *float64 `gorm:"column:farming_land_size_hectares;type:decimal(10,2)" json:"farming_land_size_hectares,omitempty"`
	FarmingSeason         string   `gorm:"column:farming_season;size:100" json:"farming_season"`
	FarmingEstimatedYield *float64 `gorm:"column:farming_estimated_yield;type:decimal(12,2)" json:"farming_estimated_yield,omitempty"`
	FarmingLivestock      string   `gorm:"column:farming_livestock;size:200" json:"farming_livestock"`
	FarmingNotes          string   `gorm:"column:farming_notes;type:text" json:"farming_notes"`

	// ML outputs, written exactly once at submission
	EligibilityApproved *bool            `gorm:"column:eligibility_approved" json:"eligibility_approved"`
	EligibilityReason   string           `gorm:"column:eligibility_reason;type:text" json:"eligibility_reason"`
	RiskScore           *float64         `gorm:"column:risk_score" json:"risk_score"`
	RecommendedAmount   *decimal.Decimal `gorm:"column:recommended_amount;type:decimal(14,2)" json:"recommended_amount"`

	// Review workflow
	Status          Status     `gorm:"column:status;size:30;default:'pending';index:idx_applications_status" json:"status"`
	ReviewedBy      *uint64    `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	StatusUpdates []StatusUpdate `gorm:"foreignKey:ApplicationID" json:"-"`
	Documents     []Document     `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

// StatusUpdate is one immutable audit row; one is written at submission
// and exactly one more per transition. UpdatedBy is nil for the
// system-generated submission entry.
type StatusUpdate struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID uint64    `gorm:"column:application_id;not null;index" json:"application_id"`
	Status        Status    `gorm:"column:status;size:30" json:"status"`
	Note          string    `gorm:"column:note;type:text" json:"note"`
	UpdatedBy     *uint64   `gorm:"column:updated_by" json:"updated_by,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StatusUpdate) TableName() string { return "application_status_updates" }

type DocumentType string

// Rwanda SACCO/MFI loan document requirements.
const (
	DocNationalID           DocumentType = "national_id"
	DocProofOfIncome        DocumentType = "proof_of_income"
	DocLandCertificate      DocumentType = "land_certificate"
	DocMaritalStatusCert    DocumentType = "marital_status_certificate"
	DocRecommendationLetter DocumentType = "recommendation_letter"
	DocProofOfAddress       DocumentType = "proof_of_address"
	DocSpouseID             DocumentType = "spouse_id"
)

var DocumentTypes = []DocumentType{
	DocNationalID, DocProofOfIncome, DocLandCertificate, DocMaritalStatusCert,
	DocRecommendationLetter, DocProofOfAddress, DocSpouseID,
}

func ValidDocumentType(t DocumentType) bool {
	for _, v := range DocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Document is metadata for an uploaded file; at most one row per
// (application, document_type), re-uploads replace the prior file.
type Document struct {
	ID            uint64       `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID uint64       `gorm:"column:application_id;not null;uniqueIndex:ux_documents_app_type" json:"application_id"`
	DocumentType  DocumentType `gorm:"column:document_type;size:40;uniqueIndex:ux_documents_app_type" json:"document_type"`
	FileName      string       `gorm:"column:file_name;size:255" json:"file_name"`
	FilePath      string       `gorm:"column:file_path;size:255" json:"file_path"`
	UploadedAt    time.Time    `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string { return "loan_application_documents" }
