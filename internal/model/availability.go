package model

// Availability links a movie to a streaming platform. At most one row exists
// per (movie, platform) pair; re-imports update the row in place.
type Availability struct {
	ID          uint     `gorm:"primaryKey"`
	MovieID     uint     `gorm:"not null;uniqueIndex:idx_availabilities_movie_platform"`
	PlatformID  uint     `gorm:"not null;uniqueIndex:idx_availabilities_movie_platform"`
	Platform    Platform `gorm:"constraint:OnDelete:CASCADE"`
	URL         string   `gorm:"size:500"`
	IsAvailable bool     `gorm:"default:true"`
}

// TableName returns the table name for Availability
func (Availability) TableName() string {
	return "availabilities"
}
