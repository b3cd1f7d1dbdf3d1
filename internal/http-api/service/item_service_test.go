package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"medialog/internal/http-api/dto"
	"medialog/internal/http-api/models"
	"medialog/internal/http-api/repository"
)

// --- MOCK REPOSITORY ---

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]models.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Upsert(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateFields(ctx context.Context, id *int64, externalID *string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, externalID, fields)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id *int64, externalID *string) error {
	args := m.Called(ctx, id, externalID)
	return args.Error(0)
}

func int64Ptr(i int64) *int64 { return &i }

// --- TESTS ---

func TestUpsert_WithoutExternalID_Inserts(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *models.Item) bool {
		// no override: the storage default supplies the timestamp
		return item.Title == "Frieren" && item.ExternalID == nil && item.UpdatedAt.IsZero()
	})).Return(nil).Once()

	err := svc.Upsert(context.Background(), &dto.CreateItemDTO{
		Title:     "Frieren",
		MediaType: "anime",
		Status:    "doing",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpsert_WithExternalID_UpsertsWithCurrentTime(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	before := time.Now().UTC()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(item *models.Item) bool {
		return item.ExternalID != nil && *item.ExternalID == "400602" &&
			!item.UpdatedAt.Before(before) && time.Since(item.UpdatedAt) < 5*time.Second
	})).Return(nil).Once()

	err := svc.Upsert(context.Background(), &dto.CreateItemDTO{
		Title:      "Frieren",
		MediaType:  "anime",
		Status:     "doing",
		ExternalID: stringPtr("400602"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsert_ExplicitUpdatedAt_WrittenVerbatim(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	want, _ := time.Parse(time.RFC3339, "2023-10-10T01:02:03+08:00")
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(item *models.Item) bool {
		return item.UpdatedAt.Equal(want)
	})).Return(nil).Once()

	err := svc.Upsert(context.Background(), &dto.CreateItemDTO{
		Title:      "葬送のフリーレン",
		MediaType:  "anime",
		Status:     "done",
		ExternalID: stringPtr("400602"),
		UpdatedAt:  stringPtr("2023-10-10T01:02:03+08:00"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpsert_TrimsTitle(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *models.Item) bool {
		return item.Title == "Frieren"
	})).Return(nil).Once()

	err := svc.Upsert(context.Background(), &dto.CreateItemDTO{
		Title:     "  Frieren  ",
		MediaType: "anime",
		Status:    "doing",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpsert_ValidationFailure_NoStorageMutation(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	err := svc.Upsert(context.Background(), &dto.CreateItemDTO{
		Title:     "Frieren",
		MediaType: "anime",
		Status:    "doing",
		Rating:    floatPtr(11),
	})

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdate_OnlyPresentFieldsWritten(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("UpdateFields", mock.Anything, int64Ptr(7), (*string)(nil),
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			if len(fields) != 2 {
				return false
			}
			_, hasStatus := fields["status"]
			_, hasUpdatedAt := fields["updated_at"]
			return hasStatus && hasUpdatedAt
		})).Return(nil).Once()

	err := svc.Update(context.Background(), int64Ptr(7), nil, &dto.UpdateItemDTO{
		Status: dto.Some("done"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_NullClearsNullableColumns(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("UpdateFields", mock.Anything, int64Ptr(7), (*string)(nil),
		mock.MatchedBy(func(fields map[string]interface{}) bool {
			rating, hasRating := fields["rating"]
			comment, hasComment := fields["comment"]
			return hasRating && rating == nil && hasComment && comment == nil
		})).Return(nil).Once()

	err := svc.Update(context.Background(), int64Ptr(7), nil, &dto.UpdateItemDTO{
		Rating:  dto.Null[float64](),
		Comment: dto.Null[string](),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_InternalIDTakesPrecedence(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("UpdateFields", mock.Anything, int64Ptr(7), (*string)(nil), mock.Anything).
		Return(nil).Once()

	err := svc.Update(context.Background(), int64Ptr(7), stringPtr("400602"), &dto.UpdateItemDTO{
		Status: dto.Some("done"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_MissingIdentifiers(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	err := svc.Update(context.Background(), nil, nil, &dto.UpdateItemDTO{
		Status: dto.Some("done"),
	})

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(gorm.ErrRecordNotFound).Once()

	err := svc.Update(context.Background(), int64Ptr(404), nil, &dto.UpdateItemDTO{
		Status: dto.Some("done"),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	expected := &models.Item{ID: 7, Title: "Frieren", MediaType: "anime", Status: "doing"}
	repo.On("GetByID", mock.Anything, int64(7)).Return(expected, nil).Once()

	item, err := svc.Get(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, expected, item)
	repo.AssertExpectations(t)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Get(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ByExternalID(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("Delete", mock.Anything, (*int64)(nil), stringPtr("400602")).Return(nil).Once()

	err := svc.Delete(context.Background(), nil, stringPtr("400602"))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	repo.On("Delete", mock.Anything, (*int64)(nil), stringPtr("does-not-exist")).
		Return(gorm.ErrRecordNotFound).Once()

	err := svc.Delete(context.Background(), nil, stringPtr("does-not-exist"))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_PassesFilters(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	expected := []models.Item{{ID: 1, Title: "Frieren"}}
	repo.On("List", mock.Anything, repository.ItemFilter{Status: "done", MediaType: "anime"}).
		Return(expected, nil).Once()

	list, err := svc.List(context.Background(), "done", "anime")

	assert.NoError(t, err)
	assert.Equal(t, expected, list)
	repo.AssertExpectations(t)
}
