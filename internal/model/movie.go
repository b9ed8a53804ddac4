package model

import (
	"time"
)

// Movie is the central catalog entity. Rows are created and refreshed by the
// import pipeline, keyed on the external TMDb identifier. Numeric ranking
// fields the provider did not report stay NULL rather than zero so ordering
// pushes them last.
type Movie struct {
	ID             uint       `gorm:"primaryKey"`
	TmdbID         *string    `gorm:"uniqueIndex;size:50"`
	Title          string     `gorm:"size:300;not null"`
	OriginalTitle  string     `gorm:"size:300"`
	Synopsis       string     `gorm:"type:text"`
	Overview       string     `gorm:"type:text"`
	ReleaseDate    *time.Time `gorm:"type:date"`
	RuntimeMinutes *int
	PosterPath     string  `gorm:"size:300"`
	Popularity     float64 `gorm:"default:0;index"`
	VoteAverage    *float64
	VoteCount      *int

	IndustryID *uint
	Industry   *Industry `gorm:"constraint:OnDelete:SET NULL"`

	Genres []Genre  `gorm:"many2many:movie_genres"`
	Cast   []Person `gorm:"many2many:movie_cast"`

	Availabilities []Availability `gorm:"constraint:OnDelete:CASCADE"`
	YouTubeLinks   []YouTubeLink  `gorm:"constraint:OnDelete:CASCADE"`
	Ratings        []Rating       `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for Movie
func (Movie) TableName() string {
	return "movies"
}
