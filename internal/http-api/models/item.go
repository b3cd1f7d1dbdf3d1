package models

import "time"

// Media type and status enums. These are closed sets: validation rejects
// anything else before it reaches storage, and the taxonomy package maps
// external codes onto them.
const (
	TypeGame  = "game"
	TypeNovel = "novel"
	TypeManga = "manga"
	TypeMusic = "music"
	TypeTV    = "tv"
	TypeMovie = "movie"
	TypeAnime = "anime"

	StatusDoing   = "doing"
	StatusWant    = "want"
	StatusDone    = "done"
	StatusOnHold  = "on_hold"
	StatusDropped = "dropped"
)

var mediaTypes = map[string]bool{
	TypeGame:  true,
	TypeNovel: true,
	TypeManga: true,
	TypeMusic: true,
	TypeTV:    true,
	TypeMovie: true,
	TypeAnime: true,
}

var statuses = map[string]bool{
	StatusDoing:   true,
	StatusWant:    true,
	StatusDone:    true,
	StatusOnHold:  true,
	StatusDropped: true,
}

func IsValidMediaType(s string) bool { return mediaTypes[s] }

func IsValidStatus(s string) bool { return statuses[s] }

// Item is a single entry in the media log. ExternalID correlates the entry
// with a subject in an external system (Bangumi) and is unique when present.
type Item struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ExternalID *string   `json:"external_id,omitempty" gorm:"uniqueIndex;size:64"`
	Title      string    `json:"title" gorm:"not null"`
	MediaType  string    `json:"media_type" gorm:"not null;size:16"`
	Status     string    `json:"status" gorm:"not null;size:16"`
	Rating     *float64  `json:"rating,omitempty" gorm:"type:decimal(4,2)"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}
