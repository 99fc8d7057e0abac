package entities

// Book is the sole persisted entity: one row per book in the collection.
// Cover holds the raw image bytes uploaded through the add/edit form; it is
// independent of the externally derived cover URL shown on the listing page
// and is served back via GET /covers/:id.
type Book struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:512" json:"title"`
	Author      string `gorm:"size:256" json:"author"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Cover       []byte `json:"-"`
}

func (Book) TableName() string {
	return "books"
}
