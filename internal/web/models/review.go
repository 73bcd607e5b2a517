package models

import "time"

// Review is a user's text review of one anime. AnimeID points into the
// catalog and Username at an account; neither is a foreign key since the
// three live in separate stores.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AnimeID   int64     `json:"anime_id" gorm:"not null;index"`
	Username  string    `json:"username" gorm:"size:150;not null;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
