package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"medialog/internal/http-api/dto"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func stringPtr(s string) *string  { return &s }
func floatPtr(f float64) *float64 { return &f }

func validCreate() *dto.CreateItemDTO {
	return &dto.CreateItemDTO{
		Title:     "Frieren",
		MediaType: "anime",
		Status:    "doing",
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	assert.NoError(t, validateCreate(validCreate()))

	in := validCreate()
	in.Rating = floatPtr(0)
	in.Comment = stringPtr("")
	in.ExternalID = stringPtr("400602")
	in.UpdatedAt = stringPtr("2024-05-01T12:00:00Z")
	assert.NoError(t, validateCreate(in))

	in.Rating = floatPtr(10)
	assert.NoError(t, validateCreate(in))
}

func TestValidateCreate_Title(t *testing.T) {
	in := validCreate()
	in.Title = ""
	assert.EqualError(t, validateCreate(in), "invalid title")

	in.Title = "   "
	assert.EqualError(t, validateCreate(in), "invalid title")
}

func TestValidateCreate_MediaType(t *testing.T) {
	in := validCreate()
	in.MediaType = "book" // close, but not a member of the set
	assert.EqualError(t, validateCreate(in), "invalid media_type")

	in.MediaType = ""
	assert.EqualError(t, validateCreate(in), "invalid media_type")
}

func TestValidateCreate_Status(t *testing.T) {
	in := validCreate()
	in.Status = "watching"
	assert.EqualError(t, validateCreate(in), "invalid status")
}

func TestValidateCreate_Rating(t *testing.T) {
	for _, r := range []float64{11, -1, math.NaN(), math.Inf(1), math.Inf(-1), 10.01} {
		in := validCreate()
		in.Rating = floatPtr(r)
		assert.EqualError(t, validateCreate(in), "invalid rating", "rating=%v", r)
	}
}

func TestValidateCreate_UpdatedAt(t *testing.T) {
	in := validCreate()
	in.UpdatedAt = stringPtr("yesterday")
	assert.EqualError(t, validateCreate(in), "invalid updated_at")
}

func TestValidateUpdate_NoFields(t *testing.T) {
	err := validateUpdate(&dto.UpdateItemDTO{})
	assert.EqualError(t, err, "no fields to update")

	// external_id alone is an identifier, not a mutable field
	err = validateUpdate(&dto.UpdateItemDTO{ExternalID: stringPtr("400602")})
	assert.EqualError(t, err, "no fields to update")
}

func TestValidateUpdate_FieldChecks(t *testing.T) {
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{Title: dto.Some("  ")}),
		"invalid title")
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{MediaType: dto.Some("book")}),
		"invalid media_type")
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{Status: dto.Some("paused")}),
		"invalid status")
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{Rating: dto.Some(42.0)}),
		"invalid rating")

	assert.NoError(t, validateUpdate(&dto.UpdateItemDTO{Status: dto.Some("done")}))
}

func TestValidateUpdate_NullFields(t *testing.T) {
	// nullable columns may be cleared with an explicit null
	assert.NoError(t, validateUpdate(&dto.UpdateItemDTO{Rating: dto.Null[float64]()}))
	assert.NoError(t, validateUpdate(&dto.UpdateItemDTO{Comment: dto.Null[string]()}))

	// the NOT NULL columns reject it
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{Title: dto.Null[string]()}),
		"invalid title")
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{MediaType: dto.Null[string]()}),
		"invalid media_type")
	assert.EqualError(t,
		validateUpdate(&dto.UpdateItemDTO{Status: dto.Null[string]()}),
		"invalid status")
}
