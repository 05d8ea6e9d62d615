package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	domain "agrifin-backend/internal/domain/application"
	domainLoan "agrifin-backend/internal/domain/loan"
	"agrifin-backend/internal/domain/uow"
	"agrifin-backend/internal/ml"
	"agrifin-backend/internal/testutil/applicationmock"
	"agrifin-backend/internal/testutil/loanmock"
	"agrifin-backend/internal/testutil/scorermock"
	"agrifin-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func validSubmit() SubmitInput {
	return SubmitInput{
		UserID:          1,
		Age:             30,
		AnnualIncome:    800000,
		CreditScore:     680,
		AmountRequested: 200000,
		DurationMonths:  24,
		Language:        "en",
	}
}

func newUsecase(apps *applicationmock.Repository, loans *loanmock.Repository, scorer *scorermock.Scorer) *Usecase {
	u := &uowmock.UoW{Repos: uow.Repos{Applications: apps, Loans: loans}}
	return NewUsecase(apps, loans, u, scorer)
}

// ----- Submit -----

func TestSubmit_ApprovedPersistsWithAuditRow(t *testing.T) {
	var created *domain.LoanApplication
	var audit *domain.StatusUpdate
	apps := &applicationmock.Repository{
		CreateFn: func(ctx context.Context, a *domain.LoanApplication) error {
			a.ID = 42
			a.CreatedAt = time.Now().UTC()
			created = a
			return nil
		},
		AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error {
			audit = u
			return nil
		},
	}
	scorer := &scorermock.Scorer{
		PredictRiskFn:     func(ml.Fields) (float64, error) { return 28.5, nil },
		RecommendAmountFn: func(ml.Fields) (float64, error) { return 250000.456, nil },
	}
	uc := newUsecase(apps, &loanmock.Repository{}, scorer)

	dto, err := uc.Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if dto.ID != 42 || dto.Status != domain.StatusPending {
		t.Fatalf("dto = %+v", dto)
	}
	if dto.EligibilityApproved == nil || !*dto.EligibilityApproved {
		t.Fatalf("expected approved")
	}
	if !strings.Contains(dto.EligibilityReason, "strong credit score (680).") {
		t.Fatalf("reason = %q", dto.EligibilityReason)
	}
	if dto.RiskScore == nil || *dto.RiskScore != 28.5 {
		t.Fatalf("risk = %v", dto.RiskScore)
	}
	if dto.RecommendedAmount == nil || dto.RecommendedAmount.String() != "250000.46" {
		t.Fatalf("recommended = %v", dto.RecommendedAmount)
	}

	if created == nil {
		t.Fatalf("application not persisted")
	}
	if created.EmploymentStatus != "Self-Employed" || created.EducationLevel != "High School" {
		t.Fatalf("string defaults not applied: %+v", created)
	}
	if audit == nil || audit.ApplicationID != 42 || audit.Status != domain.StatusPending || audit.UpdatedBy != nil {
		t.Fatalf("audit row = %+v", audit)
	}
}

func TestSubmit_TruncatesNotesOnRuneBoundary(t *testing.T) {
	var created *domain.LoanApplication
	apps := &applicationmock.Repository{
		CreateFn: func(ctx context.Context, a *domain.LoanApplication) error {
			created = a
			return nil
		},
		AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error { return nil },
	}
	uc := newUsecase(apps, &loanmock.Repository{}, &scorermock.Scorer{})

	in := validSubmit()
	in.FarmingNotes = strings.Repeat("é", 2005)
	if _, err := uc.Submit(context.Background(), in); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if created == nil {
		t.Fatalf("application not persisted")
	}
	if got := utf8.RuneCountInString(created.FarmingNotes); got != 2000 {
		t.Fatalf("notes rune count = %d, want 2000", got)
	}
	if !utf8.ValidString(created.FarmingNotes) {
		t.Fatalf("notes truncated mid-rune: %q", created.FarmingNotes[len(created.FarmingNotes)-4:])
	}
}

func TestSubmit_DeniedSkipsAmountRecommendation(t *testing.T) {
	apps := &applicationmock.Repository{
		CreateFn:             func(ctx context.Context, a *domain.LoanApplication) error { return nil },
		AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error { return nil },
	}
	scorer := &scorermock.Scorer{
		PredictEligibilityFn: func(ml.Fields) (bool, error) { return false, nil },
		RecommendAmountFn: func(ml.Fields) (float64, error) {
			t.Fatalf("RecommendAmount must not be called for denied applications")
			return 0, nil
		},
	}
	uc := newUsecase(apps, &loanmock.Repository{}, scorer)

	dto, err := uc.Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.RecommendedAmount != nil {
		t.Fatalf("recommended should be nil for denied, got %v", dto.RecommendedAmount)
	}
	if !strings.HasPrefix(dto.EligibilityReason, "Denied: ") {
		t.Fatalf("reason = %q", dto.EligibilityReason)
	}
}

func TestSubmit_ValidationBounds(t *testing.T) {
	apps := &applicationmock.Repository{
		CreateFn: func(ctx context.Context, a *domain.LoanApplication) error {
			t.Fatalf("Create must not be called for invalid input")
			return nil
		},
	}
	uc := newUsecase(apps, &loanmock.Repository{}, &scorermock.Scorer{})

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"age too low", func(in *SubmitInput) { in.Age = 17 }},
		{"age too high", func(in *SubmitInput) { in.Age = 101 }},
		{"zero amount", func(in *SubmitInput) { in.AmountRequested = 0 }},
		{"negative amount", func(in *SubmitInput) { in.AmountRequested = -5 }},
		{"zero duration", func(in *SubmitInput) { in.DurationMonths = 0 }},
		{"duration too long", func(in *SubmitInput) { in.DurationMonths = 121 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validSubmit()
			c.mutate(&in)
			_, err := uc.Submit(context.Background(), in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSubmit_ScoringFailureAbortsCreation(t *testing.T) {
	apps := &applicationmock.Repository{
		CreateFn: func(ctx context.Context, a *domain.LoanApplication) error {
			t.Fatalf("Create must not be called when scoring fails")
			return nil
		},
	}
	scorer := &scorermock.Scorer{
		PredictEligibilityFn: func(ml.Fields) (bool, error) { return false, ml.ErrModelUnavailable },
	}
	uc := newUsecase(apps, &loanmock.Repository{}, scorer)

	_, err := uc.Submit(context.Background(), validSubmit())
	if !errors.Is(err, ml.ErrModelUnavailable) {
		t.Fatalf("err = %v, want ErrModelUnavailable", err)
	}
}

func TestSubmit_MLPayloadCarriesDefaultsAndOwnHome(t *testing.T) {
	var seen ml.Fields
	apps := &applicationmock.Repository{
		CreateFn:             func(ctx context.Context, a *domain.LoanApplication) error { return nil },
		AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error { return nil },
	}
	scorer := &scorermock.Scorer{
		PredictEligibilityFn: func(f ml.Fields) (bool, error) { seen = f; return true, nil },
	}
	uc := newUsecase(apps, &loanmock.Repository{}, scorer)

	in := validSubmit()
	in.EmploymentStatus = "Farmer" // out of vocabulary
	if _, err := uc.Submit(context.Background(), in); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got := seen.Str("HomeOwnershipStatus", ""); got != "Own" {
		t.Fatalf("HomeOwnershipStatus = %q, want Own", got)
	}
	if got := seen.Num("DebtToIncomeRatio", -1); got != ml.DefaultNumeric["DebtToIncomeRatio"] {
		t.Fatalf("DebtToIncomeRatio = %v, want default", got)
	}
	if got := seen.Num("LoanAmount", -1); got != 200000 {
		t.Fatalf("LoanAmount = %v", got)
	}
	// Out-of-vocabulary categorical sanitized to the first option.
	if got := seen.Str("EmploymentStatus", ""); got != "Employed" {
		t.Fatalf("EmploymentStatus = %q, want Employed", got)
	}
}

// ----- Transition -----

func pendingApp(id uint64) *domain.LoanApplication {
	rec := decimal.NewFromInt(250000)
	return &domain.LoanApplication{
		ID:                id,
		UserID:            1,
		Status:            domain.StatusPending,
		AmountRequested:   200000,
		DurationMonths:    24,
		RecommendedAmount: &rec,
	}
}

func TestTransition_UnrecognizedTarget(t *testing.T) {
	uc := newUsecase(&applicationmock.Repository{}, &loanmock.Repository{}, &scorermock.Scorer{})
	_, err := uc.Transition(context.Background(), TransitionInput{ApplicationID: 1, Target: "archived"})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTransition_NotFound(t *testing.T) {
	apps := &applicationmock.Repository{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := newUsecase(apps, &loanmock.Repository{}, &scorermock.Scorer{})
	_, err := uc.Transition(context.Background(), TransitionInput{ApplicationID: 9, Target: domain.StatusUnderReview})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTransition_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []domain.Status{domain.StatusApproved, domain.StatusRejected} {
		t.Run(string(terminal), func(t *testing.T) {
			app := pendingApp(5)
			app.Status = terminal
			apps := &applicationmock.Repository{
				GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
					return app, nil
				},
				AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error {
					t.Fatalf("no audit row may be written for a rejected transition")
					return nil
				},
			}
			uc := newUsecase(apps, &loanmock.Repository{}, &scorermock.Scorer{})
			_, err := uc.Transition(context.Background(), TransitionInput{ApplicationID: 5, Target: domain.StatusUnderReview, ReviewerID: 7})
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestTransition_UnderReviewAppendsOneAuditRow(t *testing.T) {
	app := pendingApp(5)
	var audits []domain.StatusUpdate
	apps := &applicationmock.Repository{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domain.LoanApplication, error) { return app, nil },
		SaveFn:             func(ctx context.Context, a *domain.LoanApplication) error { return nil },
		AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error {
			audits = append(audits, *u)
			return nil
		},
		ListStatusUpdatesFn: func(ctx context.Context, id uint64) ([]domain.StatusUpdate, error) {
			return append([]domain.StatusUpdate{{Status: domain.StatusPending}}, audits...), nil
		},
	}
	loans := &loanmock.Repository{
		CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
			t.Fatalf("no loan may be created for under_review")
			return nil
		},
	}
	uc := newUsecase(apps, loans, &scorermock.Scorer{})

	dto, err := uc.Transition(context.Background(), TransitionInput{
		ApplicationID: 5, Target: domain.StatusUnderReview, Note: "checking documents", ReviewerID: 7,
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if dto.Status != domain.StatusUnderReview {
		t.Fatalf("status = %s", dto.Status)
	}
	if len(audits) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(audits))
	}
	a := audits[0]
	if a.Status != domain.StatusUnderReview || a.Note != "checking documents" || a.UpdatedBy == nil || *a.UpdatedBy != 7 {
		t.Fatalf("audit = %+v", a)
	}
	if len(dto.StatusHistory) != 2 {
		t.Fatalf("history = %d entries", len(dto.StatusHistory))
	}
	if app.ReviewedAt != nil {
		t.Fatalf("under_review must not stamp reviewed_at")
	}
}

func TestTransition_ApproveCreatesLoanAndFullSchedule(t *testing.T) {
	app := pendingApp(5)
	app.RejectionReason = "old reason from a prior cycle"

	var createdLoan *domainLoan.Loan
	var schedule []domainLoan.Repayment
	apps := &applicationmock.Repository{
		GetByIDForUpdateFn:   func(ctx context.Context, id uint64) (*domain.LoanApplication, error) { return app, nil },
		SaveFn:               func(ctx context.Context, a *domain.LoanApplication) error { return nil },
		AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error { return nil },
		ListStatusUpdatesFn: func(ctx context.Context, id uint64) ([]domain.StatusUpdate, error) {
			return []domain.StatusUpdate{{Status: domain.StatusPending}, {Status: domain.StatusApproved}}, nil
		},
	}
	loans := &loanmock.Repository{
		CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
			l.ID = 11
			createdLoan = l
			return nil
		},
		CreateRepaymentsFn: func(ctx context.Context, rs []domainLoan.Repayment) error {
			schedule = rs
			return nil
		},
	}
	uc := newUsecase(apps, loans, &scorermock.Scorer{})

	rate := 0.12
	months := 24
	dto, err := uc.Transition(context.Background(), TransitionInput{
		ApplicationID: 5, Target: domain.StatusApproved, ReviewerID: 7,
		InterestRate: &rate, DurationMonths: &months,
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}

	if dto.Status != domain.StatusApproved || dto.ReviewedAt == nil {
		t.Fatalf("dto = %+v", dto)
	}
	if dto.RejectionReason != nil {
		t.Fatalf("approval must not report a rejection reason")
	}
	if app.ReviewedBy == nil || *app.ReviewedBy != 7 || app.RejectionReason != "" {
		t.Fatalf("app review stamp = %+v", app)
	}

	if createdLoan == nil {
		t.Fatalf("loan not created")
	}
	// Amount falls back to the recommended amount when the reviewer gives none.
	if createdLoan.Amount.String() != "250000" {
		t.Fatalf("loan amount = %s", createdLoan.Amount)
	}
	if createdLoan.DurationMonths != 24 || createdLoan.InterestRate != 0.12 {
		t.Fatalf("loan terms = %+v", createdLoan)
	}
	want := domainLoan.MonthlyPayment(createdLoan.Amount, 0.12, 24)
	if !createdLoan.MonthlyPayment.Equal(want) {
		t.Fatalf("monthly = %s, want %s", createdLoan.MonthlyPayment, want)
	}

	if len(schedule) != 24 {
		t.Fatalf("schedule = %d rows, want 24", len(schedule))
	}
	for i, r := range schedule {
		if r.LoanID != 11 || !r.Amount.Equal(want) || r.Status != domainLoan.RepaymentPending {
			t.Fatalf("installment %d = %+v", i, r)
		}
	}
	if gap := schedule[1].DueDate.Sub(schedule[0].DueDate); gap != 30*24*time.Hour {
		t.Fatalf("installment gap = %v, want 720h", gap)
	}
}

func TestTransition_ApproveFailsWhenScheduleCannotBeWritten(t *testing.T) {
	app := pendingApp(5)
	dbErr := errors.New("disk full")
	apps := &applicationmock.Repository{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domain.LoanApplication, error) { return app, nil },
	}
	loans := &loanmock.Repository{
		CreateFn:           func(ctx context.Context, l *domainLoan.Loan) error { l.ID = 11; return nil },
		CreateRepaymentsFn: func(ctx context.Context, rs []domainLoan.Repayment) error { return dbErr },
	}
	uc := newUsecase(apps, loans, &scorermock.Scorer{})

	_, err := uc.Transition(context.Background(), TransitionInput{ApplicationID: 5, Target: domain.StatusApproved, ReviewerID: 7})
	if !errors.Is(err, dbErr) {
		t.Fatalf("err = %v, want schedule write failure to roll back the tx", err)
	}
}

func TestTransition_RejectRecordsReasonWithFallback(t *testing.T) {
	for _, c := range []struct{ note, wantReason string }{
		{"income not verifiable", "income not verifiable"},
		{"", "Rejected by MFI"},
	} {
		app := pendingApp(5)
		var audit *domain.StatusUpdate
		apps := &applicationmock.Repository{
			GetByIDForUpdateFn:   func(ctx context.Context, id uint64) (*domain.LoanApplication, error) { return app, nil },
			SaveFn:               func(ctx context.Context, a *domain.LoanApplication) error { return nil },
			AppendStatusUpdateFn: func(ctx context.Context, u *domain.StatusUpdate) error { audit = u; return nil },
			ListStatusUpdatesFn: func(ctx context.Context, id uint64) ([]domain.StatusUpdate, error) {
				return []domain.StatusUpdate{}, nil
			},
		}
		loans := &loanmock.Repository{
			CreateFn: func(ctx context.Context, l *domainLoan.Loan) error {
				t.Fatalf("no loan may be created on rejection")
				return nil
			},
		}
		uc := newUsecase(apps, loans, &scorermock.Scorer{})

		dto, err := uc.Transition(context.Background(), TransitionInput{
			ApplicationID: 5, Target: domain.StatusRejected, Note: c.note, ReviewerID: 7,
		})
		if err != nil {
			t.Fatalf("Transition: %v", err)
		}
		if dto.RejectionReason == nil || *dto.RejectionReason != c.wantReason {
			t.Fatalf("rejection reason = %v, want %q", dto.RejectionReason, c.wantReason)
		}
		if audit == nil || audit.Note != c.wantReason {
			t.Fatalf("audit note = %+v", audit)
		}
		if app.ReviewedAt == nil {
			t.Fatalf("rejection must stamp reviewed_at")
		}
	}
}

// ----- Documents -----

func TestUpsertDocument_ValidatesTypeAndOwnership(t *testing.T) {
	apps := &applicationmock.Repository{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
			return &domain.LoanApplication{ID: id, UserID: 1}, nil
		},
		UpsertDocumentFn: func(ctx context.Context, d *domain.Document) error { return nil },
	}
	uc := newUsecase(apps, &loanmock.Repository{}, &scorermock.Scorer{})

	if _, err := uc.UpsertDocument(context.Background(), UpsertDocumentInput{
		ApplicationID: 3, UserID: 1, DocumentType: "selfie", FileName: "x.jpg",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown type err = %v", err)
	}

	if _, err := uc.UpsertDocument(context.Background(), UpsertDocumentInput{
		ApplicationID: 3, UserID: 2, DocumentType: domain.DocNationalID, FileName: "x.jpg",
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ownership err = %v", err)
	}

	dto, err := uc.UpsertDocument(context.Background(), UpsertDocumentInput{
		ApplicationID: 3, UserID: 1, DocumentType: domain.DocNationalID, FileName: "id.pdf",
	})
	if err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if dto.DocumentType != domain.DocNationalID || dto.FileName != "id.pdf" {
		t.Fatalf("dto = %+v", dto)
	}
}

// ----- Farmer listings -----

func TestListRepayments_AcrossApprovedLoans(t *testing.T) {
	apps := &applicationmock.Repository{
		ListByUserIDFn: func(ctx context.Context, userID uint64, limit int) ([]domain.LoanApplication, error) {
			return []domain.LoanApplication{
				{ID: 1, UserID: userID, Status: domain.StatusApproved},
				{ID: 2, UserID: userID, Status: domain.StatusRejected},
			}, nil
		},
	}
	loans := &loanmock.Repository{
		ListByApplicationIDsFn: func(ctx context.Context, ids []uint64) ([]domainLoan.Loan, error) {
			if len(ids) != 1 || ids[0] != 1 {
				t.Fatalf("application ids = %v, want [1]", ids)
			}
			return []domainLoan.Loan{{ID: 10, ApplicationID: 1}}, nil
		},
		ListRepaymentsByLoanIDsFn: func(ctx context.Context, loanIDs []uint64, limit int) ([]domainLoan.Repayment, error) {
			return []domainLoan.Repayment{
				{LoanID: 10, Status: domainLoan.RepaymentPending},
				{LoanID: 10, Status: domainLoan.RepaymentPaid},
			}, nil
		},
	}
	uc := newUsecase(apps, loans, &scorermock.Scorer{})

	rs, err := uc.ListRepayments(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListRepayments: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("repayments = %d", len(rs))
	}
}

func TestListRepayments_NoApprovedLoans(t *testing.T) {
	apps := &applicationmock.Repository{
		ListByUserIDFn: func(ctx context.Context, userID uint64, limit int) ([]domain.LoanApplication, error) {
			return []domain.LoanApplication{{ID: 1, Status: domain.StatusPending}}, nil
		},
	}
	uc := newUsecase(apps, &loanmock.Repository{}, &scorermock.Scorer{})

	rs, err := uc.ListRepayments(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListRepayments: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("repayments = %d, want 0", len(rs))
	}
}
