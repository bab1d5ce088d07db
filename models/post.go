package models

import (
	"time"

	"yatube/db"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index:post_order"`
	UpdatedAt int64
	AuthorID  uint64
	Author    User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64
	Group     *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string `gorm:"type:text"`
	ImagePath string `gorm:"type:varchar(300)"`
	ThumbPath string `gorm:"type:varchar(300)"`
}

// CreatedTime is for templates.
func (p Post) CreatedTime() time.Time {
	return time.Unix(p.CreatedAt, 0)
}

// listingOrder is the ordering every listing surface uses. The id tiebreak
// keeps posts created within the same second in a stable order.
const listingOrder = "posts.created_at DESC, posts.id DESC"

func postListing(tx *gorm.DB) *gorm.DB {
	return tx.Model(&Post{}).
		Preload("Author").
		Preload("Group").
		Order(listingOrder)
}

// AllPosts is the global listing.
func AllPosts() *gorm.DB {
	return postListing(db.Instance)
}

// GroupPosts lists the posts filed under one group.
func GroupPosts(groupID uint64) *gorm.DB {
	return postListing(db.Instance.Where("posts.group_id = ?", groupID))
}

// AuthorPosts lists one author's posts.
func AuthorPosts(authorID uint64) *gorm.DB {
	return postListing(db.Instance.Where("posts.author_id = ?", authorID))
}

// FollowedPosts lists the posts of every author the viewer follows, as a
// single set-membership join. An empty follow set yields an empty listing.
func FollowedPosts(viewerID uint64) *gorm.DB {
	return postListing(db.Instance.
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", viewerID))
}

func PostByID(id uint64) (p Post, err error) {
	err = db.Instance.Preload("Author").Preload("Group").First(&p, id).Error
	return
}

func (p *Post) Create() error {
	return db.Instance.Create(p).Error
}

func (p *Post) Save() error {
	return db.Instance.Save(p).Error
}

// Delete removes the post together with its comments. The two deletes share
// a transaction so a failure leaves both in place.
func (p *Post) Delete() error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

func AuthorPostCount(authorID uint64) int64 {
	var count int64
	db.Instance.Model(&Post{}).Where("author_id = ?", authorID).Count(&count)
	return count
}
