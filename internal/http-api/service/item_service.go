package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"medialog/internal/http-api/dto"
	"medialog/internal/http-api/models"
	"medialog/internal/http-api/repository"

	"gorm.io/gorm"
)

type ItemService interface {
	List(ctx context.Context, status, mediaType string) ([]models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Upsert(ctx context.Context, in *dto.CreateItemDTO) error
	Update(ctx context.Context, id *int64, externalID *string, in *dto.UpdateItemDTO) error
	Delete(ctx context.Context, id *int64, externalID *string) error
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(r repository.ItemRepository) ItemService {
	return &itemService{repo: r}
}

func (s *itemService) List(ctx context.Context, status, mediaType string) ([]models.Item, error) {
	return s.repo.List(ctx, repository.ItemFilter{
		Status:    status,
		MediaType: mediaType,
	})
}

func (s *itemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return item, err
}

// Upsert is the import path. With an external_id the payload is a snapshot
// replacement of known-complete external state: all five mutable fields are
// rewritten on the existing row, or a row is inserted if none matches.
// Without an external_id it is a plain insert. An explicit updated_at is
// written verbatim so re-imports mirror the external system's timestamps;
// otherwise the mutation time is now.
func (s *itemService) Upsert(ctx context.Context, in *dto.CreateItemDTO) error {
	if err := validateCreate(in); err != nil {
		return err
	}

	item := in.ToModel()
	if in.UpdatedAt != nil {
		// already validated as RFC 3339
		ts, _ := time.Parse(time.RFC3339, *in.UpdatedAt)
		item.UpdatedAt = ts
	}

	if item.ExternalID == nil {
		// zero UpdatedAt leaves the timestamp to the storage default
		return s.repo.Create(ctx, &item)
	}

	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}
	return s.repo.Upsert(ctx, &item)
}

// Update is the direct-edit path: a partial patch that touches only fields
// present in the request. It deliberately shares nothing with Upsert - the
// two paths have different field-handling contracts.
func (s *itemService) Update(ctx context.Context, id *int64, externalID *string, in *dto.UpdateItemDTO) error {
	if id == nil && externalID == nil {
		return NewValidationError("missing id or external_id")
	}
	if err := validateUpdate(in); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if in.Title.Set {
		fields["title"] = strings.TrimSpace(in.Title.Value)
	}
	if in.MediaType.Set {
		fields["media_type"] = in.MediaType.Value
	}
	if in.Status.Set {
		fields["status"] = in.Status.Value
	}
	if in.Rating.Set {
		// explicit null clears the column
		if in.Rating.Valid {
			fields["rating"] = in.Rating.Value
		} else {
			fields["rating"] = nil
		}
	}
	if in.Comment.Set {
		if in.Comment.Valid {
			fields["comment"] = in.Comment.Value
		} else {
			fields["comment"] = nil
		}
	}

	// internal id takes precedence when both identifiers are supplied
	if id != nil {
		externalID = nil
	}

	err := s.repo.UpdateFields(ctx, id, externalID, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *itemService) Delete(ctx context.Context, id *int64, externalID *string) error {
	if id == nil && externalID == nil {
		return NewValidationError("missing id or external_id")
	}
	if id != nil {
		externalID = nil
	}

	err := s.repo.Delete(ctx, id, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
