package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByID(ctx context.Context, id uint64) (*LoanApplication, error)
	// GetByIDForUpdate locks the row (SELECT ... FOR UPDATE); use inside a tx.
	GetByIDForUpdate(ctx context.Context, id uint64) (*LoanApplication, error)
	Save(ctx context.Context, a *LoanApplication) error
	ListByUserID(ctx context.Context, userID uint64, limit int) ([]LoanApplication, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]LoanApplication, error)

	AppendStatusUpdate(ctx context.Context, u *StatusUpdate) error
	ListStatusUpdates(ctx context.Context, applicationID uint64) ([]StatusUpdate, error)

	// UpsertDocument replaces any existing document of the same type.
	UpsertDocument(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context, applicationID uint64) ([]Document, error)
}
