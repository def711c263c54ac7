package repository

import (
	"context"

	"gorm.io/gorm"

	"shareit/internal/model"
)

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit("Item", "Author").Create(comment).Error
}

// ListByItems returns comments with their authors, oldest first.
func (r *commentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created, id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
