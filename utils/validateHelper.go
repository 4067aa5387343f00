package utils

import (
	"context"
	"errors"

	"github.com/mmsteelworks/fabrica_backend/config"
	"gorm.io/gorm"
)

// check if id exists, return ErrorRecordNotFound otherwise
func ValidateResourceId[T any](ctx context.Context, id interface{}) error {
	count, err := ResourceCountWhere[T](ctx, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}
	return nil
}

func ResourceCountWhere[T any](ctx context.Context, cond string, values ...interface{}) (int64, error) {
	var model T
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&model).
		Where(cond, values...).
		Count(&count).Error
	return count, err
}

// GetResource fetches a record by id, mapping gorm's not-found to ErrorRecordNotFound.
func GetResource[T any](ctx context.Context, id interface{}, preloads ...string) (*T, error) {
	var record T
	db := config.GetDB()
	query := db.WithContext(ctx)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}
