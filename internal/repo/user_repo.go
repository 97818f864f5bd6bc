// Package repo implements the SQL persistence adapter, backed by GORM. This
// file provides repository functions for the User model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// CreateUser inserts u with a fresh ObjectID and UTC timestamps. Email is not
// unique; duplicates are accepted.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	rec := *u
	rec.ID = store.NewID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, classify("users.create", err)
	}
	return &rec, nil
}

// ListUsers returns every user in creation order.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	if err := db.WithContext(ctx).Order("created_at asc, id asc").Find(&out).Error; err != nil {
		return nil, classify("users.list", err)
	}
	return out, nil
}

// GetUser fetches a user by id.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	const op = "users.get"
	if _, err := store.ParseID(op, id); err != nil {
		return nil, err
	}
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, classify(op, err)
	}
	return &u, nil
}

// UpdateUser replaces name, email and password of user id.
func UpdateUser(ctx context.Context, db *gorm.DB, id string, u *domain.User) (*domain.User, error) {
	const op = "users.update"
	if _, err := store.ParseID(op, id); err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       u.Name,
			"email":      u.Email,
			"password":   u.Password,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.NotFound(op)
	}
	return GetUser(ctx, db, id)
}

// DeleteUser removes user id.
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	const op = "users.delete"
	if _, err := store.ParseID(op, id); err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound(op)
	}
	return nil
}
