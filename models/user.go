package models

// User represents a registered account. Passwords are stored as bcrypt hashes
// and never serialized in responses.
type User struct {
	ID           int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	FullName     string `json:"fullname" db:"full_name" gorm:"type:text;not null"`
	Email        string `json:"email" db:"email" gorm:"type:text;not null;index"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Phone        string `json:"phone" db:"phone" gorm:"type:text"`
}
