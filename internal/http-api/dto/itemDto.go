package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"medialog/internal/http-api/models"
)

// Optional distinguishes the three states a PATCH field can be in: absent,
// explicit null, and present with a value. encoding/json invokes
// UnmarshalJSON for null literals too, so Set flips for both present states
// and Valid only for the last.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Some and Null build the two present states; tests and callers outside the
// JSON path use them instead of flag twiddling.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// CreateItemDTO is the body of POST /items and POST /items/bangumi. The
// optional UpdatedAt carries an external system's own timestamp (RFC 3339)
// and is written verbatim, which lets imports backdate entries.
type CreateItemDTO struct {
	Title      string   `json:"title"`
	MediaType  string   `json:"media_type"`
	Status     string   `json:"status"`
	Rating     *float64 `json:"rating,omitempty"`
	Comment    *string  `json:"comment,omitempty"`
	ExternalID *string  `json:"external_id,omitempty"`
	UpdatedAt  *string  `json:"updated_at,omitempty"`
}

// UpdateItemDTO is the body of PATCH /items/:id. Only present fields are
// written; an explicit null clears the nullable columns (rating, comment).
// ExternalID is an identifier here, never a mutable field.
type UpdateItemDTO struct {
	Title      Optional[string]  `json:"title"`
	MediaType  Optional[string]  `json:"media_type"`
	Status     Optional[string]  `json:"status"`
	Rating     Optional[float64] `json:"rating"`
	Comment    Optional[string]  `json:"comment"`
	ExternalID *string           `json:"external_id,omitempty"`
}

// HasFields reports whether any mutable field is present, null included.
func (d UpdateItemDTO) HasFields() bool {
	return d.Title.Set || d.MediaType.Set || d.Status.Set || d.Rating.Set || d.Comment.Set
}

func (d CreateItemDTO) ToModel() models.Item {
	return models.Item{
		ExternalID: d.ExternalID,
		Title:      strings.TrimSpace(d.Title),
		MediaType:  d.MediaType,
		Status:     d.Status,
		Rating:     d.Rating,
		Comment:    d.Comment,
	}
}
