package models

import "time"

type Account struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Password  string    `json:"-" gorm:"size:200;not null"` // bcrypt hash, never plaintext
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Account) TableName() string {
	return "users"
}
