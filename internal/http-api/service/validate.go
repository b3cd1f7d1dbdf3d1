package service

import (
	"math"
	"strings"
	"time"

	"medialog/internal/http-api/dto"
	"medialog/internal/http-api/models"
)

// Validation is purely structural: membership in the closed enum sets, range
// checks, and presence rules. No I/O, no side effects.

func validateCreate(in *dto.CreateItemDTO) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("invalid title")
	}
	if !models.IsValidMediaType(in.MediaType) {
		return NewValidationError("invalid media_type")
	}
	if !models.IsValidStatus(in.Status) {
		return NewValidationError("invalid status")
	}
	if in.Rating != nil && !ratingValid(*in.Rating) {
		return NewValidationError("invalid rating")
	}
	if in.UpdatedAt != nil {
		if _, err := time.Parse(time.RFC3339, *in.UpdatedAt); err != nil {
			return NewValidationError("invalid updated_at")
		}
	}
	return nil
}

// Null is only meaningful for the nullable columns: rating and comment may
// be cleared with an explicit null, the NOT NULL columns reject it.
func validateUpdate(in *dto.UpdateItemDTO) error {
	if !in.HasFields() {
		return NewValidationError("no fields to update")
	}
	if in.Title.Set && (!in.Title.Valid || strings.TrimSpace(in.Title.Value) == "") {
		return NewValidationError("invalid title")
	}
	if in.MediaType.Set && (!in.MediaType.Valid || !models.IsValidMediaType(in.MediaType.Value)) {
		return NewValidationError("invalid media_type")
	}
	if in.Status.Set && (!in.Status.Valid || !models.IsValidStatus(in.Status.Value)) {
		return NewValidationError("invalid status")
	}
	if in.Rating.Set && in.Rating.Valid && !ratingValid(in.Rating.Value) {
		return NewValidationError("invalid rating")
	}
	return nil
}

func ratingValid(r float64) bool {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return false
	}
	return r >= 0 && r <= 10
}
