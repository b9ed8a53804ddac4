package model

import (
	"time"
)

// Rating is a user score for a movie, at most one per (user, movie) pair.
// UserID refers to the external auth system and may be NULL for anonymous
// or system ratings; a deleted user leaves the rating in place with a NULL
// user. The 1.0-5.0 score range is enforced at the API boundary, not here.
type Rating struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"uniqueIndex:idx_ratings_user_movie"`
	MovieID   uint   `gorm:"not null;uniqueIndex:idx_ratings_user_movie"`
	Score     float64
	Review    string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName returns the table name for Rating
func (Rating) TableName() string {
	return "ratings"
}
