package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserStatus(ctx context.Context, id uint, status UserStatus) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}

func (g *GormRepo) CreateUser(ctx context.Context, user *User) error {
	return g.db.WithContext(ctx).Create(user).Error
}

func (g *GormRepo) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := g.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *GormRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *GormRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (g *GormRepo) UpdateUserStatus(ctx context.Context, id uint, status UserStatus) (*User, error) {
	res := g.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return g.GetUserByID(ctx, id)
}

// DeleteUser removes the user; the database cascades to their events,
// bookings, payments and reviews.
func (g *GormRepo) DeleteUser(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
