package repository

import (
	"context"
	"errors"

	"catering-booking-api/models"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create stores a user after checking the email is free
func (r *Users) Create(ctx context.Context, user *models.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (r *Users) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (r *Users) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := r.db.WithContext(ctx)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	err := query.Order("id asc").Find(&users).Error
	return users, err
}
