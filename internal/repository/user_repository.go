package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"shareit/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches regardless of letter case.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email_lower = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user together with everything that references them:
// comments, bookings, owned items (and their bookings and comments) and
// item requests. Items answering a removed request are unlinked, not deleted.
// Returns gorm.ErrRecordNotFound when no such user exists.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.User{}, id).Error; err != nil {
			return err
		}

		ownedItems := tx.Model(&model.Item{}).Select("id").Where("owner_id = ?", id)
		ownRequests := tx.Model(&model.ItemRequest{}).Select("id").Where("requester_id = ?", id)

		if err := tx.Where("author_id = ? OR item_id IN (?)", id, ownedItems).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booker_id = ? OR item_id IN (?)", id, ownedItems).Delete(&model.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Item{}).Where("request_id IN (?)", ownRequests).
			Update("request_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("requester_id = ?", id).Delete(&model.ItemRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
