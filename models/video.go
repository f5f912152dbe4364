package models

// Video is an introduction-video profile card. The image attachment lives in
// the blob store; the row only keeps the generated blob name and the detected
// MIME type so the bytes can be streamed back with the right content type.
type Video struct {
	ID          int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" db:"name" gorm:"type:text;not null"`
	Age         int    `json:"age" db:"age" gorm:"not null;default:0"`
	Email       string `json:"email" db:"email" gorm:"type:text"`
	Description string `json:"description" db:"description" gorm:"type:text"`
	ImageName   string `json:"imageName" db:"image_name" gorm:"type:text"`
	ImageType   string `json:"imageType" db:"image_type" gorm:"type:text"`
}
