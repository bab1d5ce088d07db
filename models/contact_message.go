package models

import "yatube/db"

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150)"`
	Subject   string `gorm:"type:varchar(200)"`
	Body      string `gorm:"type:text"`
}

func (m *ContactMessage) Create() error {
	return db.Instance.Create(m).Error
}
