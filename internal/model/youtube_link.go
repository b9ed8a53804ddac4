package model

import (
	"time"
)

// YouTubeLink is a trailer or promotional video attached to a movie.
// Uniqueness is per (movie, url) so re-imports do not duplicate links.
type YouTubeLink struct {
	ID         uint      `gorm:"primaryKey"`
	MovieID    uint      `gorm:"not null;uniqueIndex:idx_youtube_links_movie_url"`
	URL        string    `gorm:"size:500;not null;uniqueIndex:idx_youtube_links_movie_url"`
	Title      string    `gorm:"size:300"`
	IsOfficial bool      `gorm:"default:false"`
	AddedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for YouTubeLink
func (YouTubeLink) TableName() string {
	return "youtube_links"
}
