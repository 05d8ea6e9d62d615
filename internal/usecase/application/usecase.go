package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "agrifin-backend/internal/domain/application"
	domainLoan "agrifin-backend/internal/domain/loan"
	"agrifin-backend/internal/domain/uow"
	"agrifin-backend/internal/explain"
	"agrifin-backend/internal/ml"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultInterestRate applies when the reviewer does not set a rate on
// approval.
const DefaultInterestRate = 0.12

const listLimit = 50

type Usecase struct {
	apps   domain.Repository
	loans  domainLoan.Repository
	uow    uow.UnitOfWork
	scorer ml.Scorer
}

func NewUsecase(apps domain.Repository, loans domainLoan.Repository, tx uow.UnitOfWork, scorer ml.Scorer) *Usecase {
	return &Usecase{apps: apps, loans: loans, uow: tx, scorer: scorer}
}

// Submit validates the input, scores it against all three models, and
// persists the application in pending state together with its first
// audit row. A scoring failure aborts creation entirely.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.Age < 18 || in.Age > 100 {
		return nil, fmt.Errorf("%w: age must be between 18 and 100", domain.ErrInvalidInput)
	}
	if in.AmountRequested <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be greater than 0", domain.ErrInvalidInput)
	}
	if in.DurationMonths < 1 || in.DurationMonths > 120 {
		return nil, fmt.Errorf("%w: loan duration must be between 1 and 120 months", domain.ErrInvalidInput)
	}

	app := &domain.LoanApplication{
		UserID:                in.UserID,
		Age:                   in.Age,
		AnnualIncome:          in.AnnualIncome,
		CreditScore:           in.CreditScore,
		AmountRequested:       in.AmountRequested,
		DurationMonths:        in.DurationMonths,
		EmploymentStatus:      clamp(in.EmploymentStatus, 30, "Self-Employed"),
		EducationLevel:        clamp(in.EducationLevel, 30, "High School"),
		MaritalStatus:         clamp(in.MaritalStatus, 20, "Married"),
		LoanPurpose:           clamp(in.LoanPurpose, 50, "Other"),
		FarmingActivity:       clamp(in.FarmingActivity, 300, ""),
		FarmingLandHectares:   in.FarmingLandHectares,
		FarmingSeason:         clamp(in.FarmingSeason, 100, ""),
		FarmingEstimatedYield: in.FarmingEstimatedYield,
		FarmingLivestock:      clamp(in.FarmingLivestock, 200, ""),
		FarmingNotes:          clamp(in.FarmingNotes, 2000, ""),
		Status:                domain.StatusPending,
	}

	fields := mlPayload(app)
	lang := explain.NormalizeLanguage(in.Language)

	approved, err := u.scorer.PredictEligibility(fields)
	if err != nil {
		return nil, err
	}
	risk, err := u.scorer.PredictRisk(fields)
	if err != nil {
		return nil, err
	}
	app.EligibilityApproved = &approved
	app.EligibilityReason = explain.EligibilityReason(fields, approved, lang)
	app.RiskScore = &risk
	if approved {
		amt, err := u.scorer.RecommendAmount(fields)
		if err != nil {
			return nil, err
		}
		rec := decimal.NewFromFloat(amt).Round(2)
		app.RecommendedAmount = &rec
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}
		return r.Applications.AppendStatusUpdate(ctx, &domain.StatusUpdate{
			ApplicationID: app.ID,
			Status:        domain.StatusPending,
		})
	})
	if err != nil {
		return nil, err
	}

	dto := toApplicationDTO(app)
	dto.StatusHistory = []StatusUpdateDTO{{Status: domain.StatusPending, CreatedAt: app.CreatedAt}}
	return dto, nil
}

// Transition applies a reviewer status change inside a row-locked
// transaction. Approval creates the loan and its full repayment schedule
// atomically with the status change; every transition appends exactly one
// audit row.
func (u *Usecase) Transition(ctx context.Context, in TransitionInput) (*TransitionDTO, error) {
	if !domain.ValidReviewerStatus(in.Target) {
		return nil, fmt.Errorf("%w: unrecognized target status %q", domain.ErrInvalidTransition, in.Target)
	}

	var dto *TransitionDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, app *domain.LoanApplication) error {
		if app.Status.Terminal() {
			return fmt.Errorf("%w: application already %s", domain.ErrInvalidTransition, app.Status)
		}

		now := time.Now().UTC()
		note := in.Note
		app.Status = in.Target

		switch in.Target {
		case domain.StatusApproved:
			app.ReviewedBy = &in.ReviewerID
			app.ReviewedAt = &now
			app.RejectionReason = ""
			if note == "" {
				note = "Approved by MFI"
			}
			if err := u.createLoan(ctx, r, app, in, now); err != nil {
				return err
			}
		case domain.StatusRejected:
			app.ReviewedBy = &in.ReviewerID
			app.ReviewedAt = &now
			if note == "" {
				note = "Rejected by MFI"
			}
			app.RejectionReason = clamp(note, 500, "")
		}

		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		if err := r.Applications.AppendStatusUpdate(ctx, &domain.StatusUpdate{
			ApplicationID: app.ID,
			Status:        in.Target,
			Note:          note,
			UpdatedBy:     &in.ReviewerID,
		}); err != nil {
			return err
		}

		history, err := r.Applications.ListStatusUpdates(ctx, app.ID)
		if err != nil {
			return err
		}
		dto = &TransitionDTO{
			ID:            app.ID,
			Status:        app.Status,
			StatusHistory: toStatusHistory(history),
			ReviewedAt:    app.ReviewedAt,
		}
		if app.Status == domain.StatusRejected {
			dto.RejectionReason = &app.RejectionReason
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) createLoan(ctx context.Context, r uow.Repos, app *domain.LoanApplication, in TransitionInput, approvedAt time.Time) error {
	amount := app.AmountRequested
	if app.RecommendedAmount != nil {
		amount = app.RecommendedAmount.InexactFloat64()
	}
	if in.Amount != nil && *in.Amount > 0 {
		amount = *in.Amount
	}
	rate := DefaultInterestRate
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	months := app.DurationMonths
	if in.DurationMonths != nil && *in.DurationMonths > 0 {
		months = *in.DurationMonths
	}

	principal := decimal.NewFromFloat(amount).Round(2)
	monthly := domainLoan.MonthlyPayment(principal, rate, months)
	l := &domainLoan.Loan{
		ApplicationID:  app.ID,
		Amount:         principal,
		InterestRate:   rate,
		DurationMonths: months,
		MonthlyPayment: monthly,
	}
	if err := r.Loans.Create(ctx, l); err != nil {
		return err
	}
	schedule := domainLoan.BuildSchedule(l.ID, monthly, months, approvedAt)
	if len(schedule) == 0 {
		return nil
	}
	return r.Loans.CreateRepayments(ctx, schedule)
}

// Get returns one application with history and documents; callers pass
// userID 0 to skip the ownership check (reviewer access).
func (u *Usecase) Get(ctx context.Context, id, userID uint64) (*ApplicationDTO, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if userID != 0 && app.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return u.hydrate(ctx, app)
}

// ListByUser returns the farmer's own applications, most recent first.
func (u *Usecase) ListByUser(ctx context.Context, userID uint64) ([]ApplicationDTO, error) {
	apps, err := u.apps.ListByUserID(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}
	return u.hydrateAll(ctx, apps)
}

// ListForReview returns the review queue, optionally filtered by status.
func (u *Usecase) ListForReview(ctx context.Context, status domain.Status) ([]ApplicationDTO, error) {
	apps, err := u.apps.ListByStatus(ctx, status, listLimit)
	if err != nil {
		return nil, err
	}
	return u.hydrateAll(ctx, apps)
}

// UpsertDocument records document metadata, replacing any prior document
// of the same type for the application.
func (u *Usecase) UpsertDocument(ctx context.Context, in UpsertDocumentInput) (*DocumentDTO, error) {
	if !domain.ValidDocumentType(in.DocumentType) {
		return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidInput, in.DocumentType)
	}
	app, err := u.apps.GetByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if in.UserID != 0 && app.UserID != in.UserID {
		return nil, domain.ErrNotFound
	}
	d := &domain.Document{
		ApplicationID: app.ID,
		DocumentType:  in.DocumentType,
		FileName:      clamp(in.FileName, 255, ""),
		FilePath:      clamp(in.FilePath, 255, ""),
	}
	if err := u.apps.UpsertDocument(ctx, d); err != nil {
		return nil, err
	}
	return &DocumentDTO{DocumentType: d.DocumentType, FileName: d.FileName, UploadedAt: d.UploadedAt}, nil
}

// ListLoans returns the farmer's approved loans.
func (u *Usecase) ListLoans(ctx context.Context, userID uint64) ([]LoanDTO, error) {
	loans, err := u.loansForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for _, l := range loans {
		out = append(out, LoanDTO{
			ID:             l.ID,
			ApplicationID:  l.ApplicationID,
			Amount:         l.Amount,
			InterestRate:   l.InterestRate,
			DurationMonths: l.DurationMonths,
			MonthlyPayment: l.MonthlyPayment,
			DisbursedAt:    l.DisbursedAt,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}

// ListRepayments returns the farmer's repayment rows across all loans.
func (u *Usecase) ListRepayments(ctx context.Context, userID uint64) ([]RepaymentDTO, error) {
	loans, err := u.loansForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	if len(ids) == 0 {
		return []RepaymentDTO{}, nil
	}
	rs, err := u.loans.ListRepaymentsByLoanIDs(ctx, ids, 100)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, RepaymentDTO{
			LoanID:  r.LoanID,
			Amount:  r.Amount,
			DueDate: r.DueDate,
			Status:  string(r.Status),
			PaidAt:  r.PaidAt,
		})
	}
	return out, nil
}

func (u *Usecase) loansForUser(ctx context.Context, userID uint64) ([]domainLoan.Loan, error) {
	apps, err := u.apps.ListByUserID(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(apps))
	for _, a := range apps {
		if a.Status == domain.StatusApproved {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return u.loans.ListByApplicationIDs(ctx, ids)
}

func (u *Usecase) hydrate(ctx context.Context, app *domain.LoanApplication) (*ApplicationDTO, error) {
	history, err := u.apps.ListStatusUpdates(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	docs, err := u.apps.ListDocuments(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	dto := toApplicationDTO(app)
	dto.StatusHistory = toStatusHistory(history)
	dto.Documents = toDocuments(docs)
	return dto, nil
}

func (u *Usecase) hydrateAll(ctx context.Context, apps []domain.LoanApplication) ([]ApplicationDTO, error) {
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		dto, err := u.hydrate(ctx, &apps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// mlPayload builds the model field bag: defaults for everything the farmer
// form does not collect, overridden by the application's own fields.
// HomeOwnershipStatus defaults to Own for farmers.
func mlPayload(app *domain.LoanApplication) ml.Fields {
	fields := ml.Fields{}
	for k, v := range ml.DefaultNumeric {
		fields[k] = v
	}
	fields["Age"] = float64(app.Age)
	fields["AnnualIncome"] = app.AnnualIncome
	fields["CreditScore"] = float64(app.CreditScore)
	fields["LoanAmount"] = app.AmountRequested
	fields["LoanDuration"] = float64(app.DurationMonths)
	fields["EmploymentStatus"] = app.EmploymentStatus
	fields["EducationLevel"] = app.EducationLevel
	fields["MaritalStatus"] = app.MaritalStatus
	fields["LoanPurpose"] = app.LoanPurpose
	fields["HomeOwnershipStatus"] = "Own"

	for col, opts := range ml.CategoricalOptions {
		v, _ := fields[col].(string)
		found := false
		for _, opt := range opts {
			if opt == v {
				found = true
				break
			}
		}
		if !found {
			fields[col] = opts[0]
		}
	}
	return fields
}

func toApplicationDTO(app *domain.LoanApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ID:                  app.ID,
		Status:              app.Status,
		Age:                 app.Age,
		AnnualIncome:        app.AnnualIncome,
		CreditScore:         app.CreditScore,
		AmountRequested:     app.AmountRequested,
		DurationMonths:      app.DurationMonths,
		EligibilityApproved: app.EligibilityApproved,
		EligibilityReason:   app.EligibilityReason,
		RiskScore:           app.RiskScore,
		RecommendedAmount:   app.RecommendedAmount,
		RejectionReason:     app.RejectionReason,
		ReviewedAt:          app.ReviewedAt,
		CreatedAt:           app.CreatedAt,
	}
}

func toStatusHistory(updates []domain.StatusUpdate) []StatusUpdateDTO {
	out := make([]StatusUpdateDTO, 0, len(updates))
	for _, up := range updates {
		out = append(out, StatusUpdateDTO{
			Status:    up.Status,
			Note:      up.Note,
			UpdatedBy: up.UpdatedBy,
			CreatedAt: up.CreatedAt,
		})
	}
	return out
}

func toDocuments(docs []domain.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentDTO{DocumentType: d.DocumentType, FileName: d.FileName, UploadedAt: d.UploadedAt})
	}
	return out
}

// clamp truncates to max characters, not bytes, so accented free text is
// never cut mid-rune.
func clamp(s string, max int, def string) string {
	if s == "" {
		return def
	}
	if r := []rune(s); len(r) > max {
		return string(r[:max])
	}
	return s
}
