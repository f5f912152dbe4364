package models

import "time"

// AnonymousAuthor is stored when a comment is created without an author.
const AnonymousAuthor = "Anonymous"

// Comment belongs to exactly one post. Date is always server-set.
type Comment struct {
	ID     int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Text   string    `json:"text" db:"text" gorm:"type:text;not null"`
	Author string    `json:"author" db:"author" gorm:"type:text;not null"`
	Date   time.Time `json:"date" db:"date" gorm:"type:timestamp;not null"`
	PostID int64     `json:"postId" db:"post_id" gorm:"not null;index"`
}
