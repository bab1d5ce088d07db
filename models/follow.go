package models

import "yatube/db"

// Follow is a directed "user follows author" edge. The composite primary
// key keeps the pair unique at the schema level.
type Follow struct {
	CreatedAt int64
	UserID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"primaryKey;autoIncrement:false"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:AuthorID"`
}

// FollowCreate adds the edge. Following yourself is a no-op, and so is
// following someone twice.
func FollowCreate(userID, authorID uint64) error {
	if userID == authorID {
		return nil
	}
	follow := Follow{UserID: userID, AuthorID: authorID}
	return db.Instance.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
}

// FollowDelete removes the edge. A missing edge is not an error.
func FollowDelete(userID, authorID uint64) error {
	return db.Instance.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{}).Error
}

func IsFollowing(userID, authorID uint64) bool {
	var count int64
	db.Instance.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count)
	return count > 0
}
