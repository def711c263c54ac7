package repository

import (
	"context"

	"gorm.io/gorm"

	"shareit/internal/model"
)

// ItemRequestRepository defines item request persistence operations.
type ItemRequestRepository interface {
	Create(ctx context.Context, request *model.ItemRequest) error
	FindByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error)
}

type itemRequestRepository struct {
	db *gorm.DB
}

// NewItemRequestRepository creates a new item request repository.
func NewItemRequestRepository(db *gorm.DB) ItemRequestRepository {
	return &itemRequestRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("items.id")
	})
}

func (r *itemRequestRepository) Create(ctx context.Context, request *model.ItemRequest) error {
	return r.db.WithContext(ctx).Omit("Requester", "Items").Create(request).Error
}

func (r *itemRequestRepository) FindByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	var request model.ItemRequest
	if err := r.db.WithContext(ctx).Scopes(withItems).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByRequester returns the newest requests first.
func (r *itemRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	var requests []model.ItemRequest
	err := r.db.WithContext(ctx).
		Scopes(withItems).
		Where("requester_id = ?", requesterID).
		Order("created DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListOthers returns requests not filed by userID, newest first.
func (r *itemRequestRepository) ListOthers(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error) {
	var requests []model.ItemRequest
	err := r.db.WithContext(ctx).
		Scopes(withItems, paginate(page)).
		Where("requester_id <> ?", userID).
		Order("created DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
