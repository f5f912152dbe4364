package models

import "time"

// Post is an owner-scoped skill post with a single image attachment. The Image
// field holds the generated blob name, not a client-supplied filename.
type Post struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Topic       string    `json:"topic" db:"topic" gorm:"type:text"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	Status      string    `json:"status" db:"status" gorm:"type:text"`
	Tag         string    `json:"tag" db:"tag" gorm:"type:text"`
	Image       string    `json:"image" db:"image" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
	UserID      int64     `json:"userId" db:"user_id" gorm:"not null;index"`
	Comments    []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// PostDetails is the partial-update payload carried in the "post details"
// multipart part. Pointer fields distinguish "absent" from "set to empty":
// nil values preserve the existing column.
type PostDetails struct {
	Name        *string `json:"name"`
	Topic       *string `json:"topic"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Tag         *string `json:"tag"`
}
