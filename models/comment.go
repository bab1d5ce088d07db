package models

import (
	"time"

	"yatube/db"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	PostID    uint64
	Post      Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
}

func (c Comment) CreatedTime() time.Time {
	return time.Unix(c.CreatedAt, 0)
}

func (c *Comment) Create() error {
	return db.Instance.Create(c).Error
}

func CommentsForPost(postID uint64) ([]Comment, error) {
	comments := []Comment{}
	err := db.Instance.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}
