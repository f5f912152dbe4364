package models

import "time"

// Blog is a community article with any number of image attachments. Blogs are
// not owner-scoped; BlogID is a client-facing UUID, generated server-side when
// the client does not supply one.
type Blog struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	BlogID    string    `json:"blogId" db:"blog_id" gorm:"type:text;index"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	Author    string    `json:"author" db:"author" gorm:"type:text"`
	Category  string    `json:"category" db:"category" gorm:"type:text"`
	Images    []string  `json:"blogImages" db:"images" gorm:"type:text;serializer:json"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
