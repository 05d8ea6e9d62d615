package mysql

import (
	"context"

	domain "agrifin-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	var out domain.LoanApplication
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	q := r.db.WithContext(ctx)
	// sqlite has no FOR UPDATE; its writes are serialized anyway
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out domain.LoanApplication
	res := q.First(&out, id)
	return &out, res.Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *domain.LoanApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) ListByUserID(ctx context.Context, userID uint64, limit int) ([]domain.LoanApplication, error) {
	var out []domain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

// ListByStatus returns the review queue; an empty status means all
// applications, most recent first.
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.LoanApplication, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.LoanApplication
	res := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) AppendStatusUpdate(ctx context.Context, u *domain.StatusUpdate) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *ApplicationRepository) ListStatusUpdates(ctx context.Context, applicationID uint64) ([]domain.StatusUpdate, error) {
	var out []domain.StatusUpdate
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// UpsertDocument relies on the (application_id, document_type) unique
// index; a re-upload replaces the file columns in place.
func (r *ApplicationRepository) UpsertDocument(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}, {Name: "document_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"file_name", "file_path", "uploaded_at"}),
		}).
		Create(d).Error
}

func (r *ApplicationRepository) ListDocuments(ctx context.Context, applicationID uint64) ([]domain.Document, error) {
	var out []domain.Document
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("document_type ASC").
		Find(&out)
	return out, res.Error
}
