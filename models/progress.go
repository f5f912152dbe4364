package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// LearningProgress tracks one learning item for a user. Timestamps are kept at
// date granularity (the JSON representation truncates to YYYY-MM-DD).
type LearningProgress struct {
	ID          int64    `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" db:"name" gorm:"type:text;not null"`
	Topic       string   `json:"topic" db:"topic" gorm:"type:text"`
	Description string   `json:"description" db:"description" gorm:"type:text"`
	Status      string   `json:"status" db:"status" gorm:"type:text"`
	Image       string   `json:"image" db:"image" gorm:"type:text"`
	Tag         string   `json:"tag" db:"tag" gorm:"type:text"`
	CreatedAt   DateOnly `json:"createdAt" db:"created_at" gorm:"type:date"`
	UpdatedAt   DateOnly `json:"updatedAt" db:"updated_at" gorm:"type:date"`
	UserID      int64    `json:"userId" db:"user_id" gorm:"not null;index"`
}

// ProgressDetails is the partial-update payload for a learning progress entry.
// nil fields preserve existing values.
type ProgressDetails struct {
	Name        *string `json:"name"`
	Topic       *string `json:"topic"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Tag         *string `json:"tag"`
}

// DateOnly is a time.Time that marshals as YYYY-MM-DD.
type DateOnly struct {
	time.Time
}

// Today returns the current date truncated to day precision.
func Today() DateOnly {
	y, m, d := time.Now().Date()
	return DateOnly{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// Value writes the date as a plain time.Time so the postgres driver maps it
// onto a date column.
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan reads a date column back. Drivers deliver dates as time.Time, string
// or []byte depending on protocol and format.
func (d *DateOnly) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case []byte:
		t, err := time.Parse(time.DateOnly, string(v))
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	t, err := time.Parse(`"`+time.DateOnly+`"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
