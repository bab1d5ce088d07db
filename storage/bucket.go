package storage

import (
	"os"

	"yatube/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

const (
	LocationPosts  = "posts"
	LocationThumbs = "posts/thumb"
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"` // S3 bucket name for S3 storage
	StorageType StorageType
	Path        string `gorm:"type:varchar(300)"` // Directory on disk, or a key prefix in the S3 bucket
	Region      string `gorm:"type:varchar(100)"`
	AccessKey   string `gorm:"type:varchar(200)"`
	SecretKey   string `gorm:"type:varchar(200)"`
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		// Pre-create media locations on disk
		if err := os.MkdirAll(b.Path+"/"+LocationPosts, 0777); err != nil {
			return err
		}
		if err := os.MkdirAll(b.Path+"/"+LocationThumbs, 0777); err != nil {
			return err
		}
	}
	return nil
}

// GetRemotePath maps a storage path to a key in the S3 bucket.
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return b.Path + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.Config{
		Region: aws.String(b.Region),
	}
	if b.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(b.AccessKey, b.SecretKey, "")
	}
	sess := session.Must(session.NewSession(&cfg))
	return s3.New(sess)
}
