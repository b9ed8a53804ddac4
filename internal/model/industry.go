package model

// Industry classifies a movie's production origin (Hollywood, Bollywood,
// Tollywood, Other). Rows are created lazily by the importer and never deleted.
type Industry struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:80;not null"`
}

// TableName returns the table name for Industry
func (Industry) TableName() string {
	return "industries"
}
