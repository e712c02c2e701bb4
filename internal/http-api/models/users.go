package models

import "time"

// UserStatus mirrors the single-letter account states used across the
// community features.
type UserStatus string

const (
	UserActive  UserStatus = "A"
	UserBlocked UserStatus = "B"
)

type User struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Nickname  string     `json:"nickname" gorm:"not null"`
	Point     int        `json:"point" gorm:"not null;default:0"`
	Dark      bool       `json:"dark" gorm:"not null;default:true"`
	OnAlarm   bool       `json:"on_alarm" gorm:"not null;default:true"`
	Status    UserStatus `json:"status" gorm:"type:varchar(1);not null;default:'A'"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
