// Package applicationmock provides a func-field test double for the
// application repository; unset methods fail loudly.
package applicationmock

import (
	"context"
	"errors"

	domain "agrifin-backend/internal/domain/application"
)

var errNotImplemented = errors.New("applicationmock: not implemented")

type Repository struct {
	CreateFn             func(ctx context.Context, a *domain.LoanApplication) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.LoanApplication, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.LoanApplication, error)
	SaveFn               func(ctx context.Context, a *domain.LoanApplication) error
	ListByUserIDFn       func(ctx context.Context, userID uint64, limit int) ([]domain.LoanApplication, error)
	ListByStatusFn       func(ctx context.Context, status domain.Status, limit int) ([]domain.LoanApplication, error)
	AppendStatusUpdateFn func(ctx context.Context, u *domain.StatusUpdate) error
	ListStatusUpdatesFn  func(ctx context.Context, applicationID uint64) ([]domain.StatusUpdate, error)
	UpsertDocumentFn     func(ctx context.Context, d *domain.Document) error
	ListDocumentsFn      func(ctx context.Context, applicationID uint64) ([]domain.Document, error)
}

func (m *Repository) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return errNotImplemented
}

func (m *Repository) GetByID(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *Repository) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *Repository) Save(ctx context.Context, a *domain.LoanApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return errNotImplemented
}

func (m *Repository) ListByUserID(ctx context.Context, userID uint64, limit int) ([]domain.LoanApplication, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, limit)
	}
	return nil, errNotImplemented
}

func (m *Repository) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.LoanApplication, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, limit)
	}
	return nil, errNotImplemented
}

func (m *Repository) AppendStatusUpdate(ctx context.Context, u *domain.StatusUpdate) error {
	if m.AppendStatusUpdateFn != nil {
		return m.AppendStatusUpdateFn(ctx, u)
	}
	return errNotImplemented
}

func (m *Repository) ListStatusUpdates(ctx context.Context, applicationID uint64) ([]domain.StatusUpdate, error) {
	if m.ListStatusUpdatesFn != nil {
		return m.ListStatusUpdatesFn(ctx, applicationID)
	}
	return nil, errNotImplemented
}

func (m *Repository) UpsertDocument(ctx context.Context, d *domain.Document) error {
	if m.UpsertDocumentFn != nil {
		return m.UpsertDocumentFn(ctx, d)
	}
	return errNotImplemented
}

func (m *Repository) ListDocuments(ctx context.Context, applicationID uint64) ([]domain.Document, error) {
	if m.ListDocumentsFn != nil {
		return m.ListDocumentsFn(ctx, applicationID)
	}
	return nil, errNotImplemented
}
