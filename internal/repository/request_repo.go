package repository

import (
	"context"
	"errors"

	"procurehub/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a request id does not exist.
var ErrNotFound = errors.New("request not found")

type RequestRepository interface {
	// Create inserts the request together with its order lines. When tx is
	// non-nil the insert runs inside that transaction.
	Create(ctx context.Context, tx *gorm.DB, r *model.Request) error
	FindByID(ctx context.Context, id uint) (*model.Request, error)
	// List returns requests in insertion order, order lines preloaded.
	List(ctx context.Context, skip, limit int) ([]model.Request, error)
	// UpdateStatus overwrites only the status column. ErrNotFound when the
	// id is unknown; nothing is written in that case.
	UpdateStatus(ctx context.Context, id uint, status string) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type requestRepo struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) RequestRepository { return &requestRepo{db: db} }

func (r *requestRepo) DB() *gorm.DB { return r.db }

func (r *requestRepo) Create(ctx context.Context, tx *gorm.DB, req *model.Request) error {
	db := tx
	if db == nil {
		db = r.db
	}
	// Associated OrderLines are inserted in slice order within the same
	// statement batch, so request+lines land atomically.
	return db.WithContext(ctx).Create(req).Error
}

func (r *requestRepo) FindByID(ctx context.Context, id uint) (*model.Request, error) {
	var req model.Request
	err := r.db.WithContext(ctx).
		Preload("OrderLines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id asc") }).
		First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) List(ctx context.Context, skip, limit int) ([]model.Request, error) {
	var reqs []model.Request
	err := r.db.WithContext(ctx).
		Preload("OrderLines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id asc") }).
		Order("procurement_requests.id asc").
		Offset(skip).Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *requestRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
