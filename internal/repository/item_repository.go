package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"shareit/internal/model"
)

// ItemRepository defines item persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, page model.Page) ([]model.Item, error)
	Search(ctx context.Context, text string, page model.Page) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByOwner returns the owner's items ordered by id.
func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64, page model.Page) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Scopes(paginate(page)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Search matches text as a case-insensitive substring of name or description
// among available items. Blank text matches nothing.
func (r *itemRepository) Search(ctx context.Context, text string, page model.Page) ([]model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []model.Item{}, nil
	}
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"

	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("name_lower LIKE ? ESCAPE '!' OR description_lower LIKE ? ESCAPE '!'", pattern, pattern).
		Order("id").
		Scopes(paginate(page)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// likeEscaper makes LIKE wildcards literal. '!' is used as the escape
// character because backslash is itself special in MySQL string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
