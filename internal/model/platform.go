package model

// Platform is a streaming platform (Netflix, Prime, Hotstar...)
type Platform struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"uniqueIndex;size:120;not null"`
	Website string `gorm:"size:500"`
}

// TableName returns the table name for Platform
func (Platform) TableName() string {
	return "platforms"
}
