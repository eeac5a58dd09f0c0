package models

type ComicTag struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
}

func (ComicTag) TableName() string {
	return "comic_tags"
}

// explicit join model to keep an id column on the association table
type ComicBookTag struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ComicID    string `json:"comic_id" gorm:"type:uuid;index;not null"`
	ComicTagID int64  `json:"comic_tag_id" gorm:"index;not null"`
}

func (ComicBookTag) TableName() string {
	return "comic_book_tags"
}
