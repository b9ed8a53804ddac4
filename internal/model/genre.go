package model

// Genre is a movie genre keyed by its unique name
type Genre struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

// TableName returns the table name for Genre
func (Genre) TableName() string {
	return "genres"
}
