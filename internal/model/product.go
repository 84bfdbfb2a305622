package model

// Product is a catalog entry. Title and Text are both globally unique: two
// products may not share a name or a description.
type Product struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"uniqueIndex;size:50;not null"`
	Text     string `json:"text" gorm:"uniqueIndex;size:50;not null"`
	State    string `json:"state" gorm:"size:50;not null"` // opaque status string, not validated
	Category string `json:"category" gorm:"size:50;not null"`
}
