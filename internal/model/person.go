package model

// Person is an actor or actress appearing in a movie's cast
type Person struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:200;not null;index"`
	Bio  string `gorm:"type:text"`
}

// TableName returns the table name for Person
func (Person) TableName() string {
	return "people"
}
