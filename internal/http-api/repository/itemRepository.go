package repository

import (
	"context"
	"fmt"

	"medialog/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemFilter narrows List results. Empty fields are ignored; both set means
// both must match.
type ItemFilter struct {
	Status    string
	MediaType string
}

func (f ItemFilter) IsZero() bool {
	return f.Status == "" && f.MediaType == ""
}

type ItemRepository interface {
	List(ctx context.Context, filter ItemFilter) ([]models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Upsert(ctx context.Context, item *models.Item) error
	UpdateFields(ctx context.Context, id *int64, externalID *string, fields map[string]interface{}) error
	Delete(ctx context.Context, id *int64, externalID *string) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// List returns the full matching set. The filtered listing is ordered by
// recency of mutation; the unfiltered listing by insertion order, newest
// first.
func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	var list []models.Item

	db := r.db.WithContext(ctx)
	if filter.IsZero() {
		db = db.Order("id desc")
	} else {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.MediaType != "" {
			db = db.Where("media_type = ?", filter.MediaType)
		}
		db = db.Order("updated_at desc")
	}

	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return list, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Upsert inserts item or, when a row with the same external_id exists,
// rewrites its five mutable fields in a single INSERT ... ON CONFLICT DO
// UPDATE statement. Doing it in one statement (rather than select-then-write)
// keeps concurrent imports of a new external_id from double-inserting.
// created_at is never part of the conflict assignments. The caller must set
// item.UpdatedAt; it is written as-is on both the insert and update arms.
func (r *itemRepository) Upsert(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"title":      item.Title,
			"media_type": item.MediaType,
			"status":     item.Status,
			"rating":     item.Rating,
			"comment":    item.Comment,
			"updated_at": item.UpdatedAt,
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// UpdateFields applies the given column assignments to the row identified by
// id, or by externalID when id is nil. UpdateColumns skips GORM's automatic
// updated_at handling, so the caller controls the timestamp through the map.
func (r *itemRepository) UpdateFields(ctx context.Context, id *int64, externalID *string, fields map[string]interface{}) error {
	db := r.db.WithContext(ctx).Model(&models.Item{})
	if id != nil {
		db = db.Where("id = ?", *id)
	} else {
		db = db.Where("external_id = ?", *externalID)
	}

	result := db.UpdateColumns(fields)
	if result.Error != nil {
		return fmt.Errorf("update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id *int64, externalID *string) error {
	db := r.db.WithContext(ctx)
	if id != nil {
		db = db.Where("id = ?", *id)
	} else {
		db = db.Where("external_id = ?", *externalID)
	}

	result := db.Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
