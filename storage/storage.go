package storage

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"yatube/config"
	"yatube/db"

	"github.com/rs/zerolog/log"
)

type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	// ListFiles returns the stored paths under a location, leaving out
	// files newer than skipNewerThan (uploads may still be in flight).
	ListFiles(location string, skipNewerThan time.Duration) ([]string, error)
	GetSize(path string) int64
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 {
		// First boot - create a disk bucket for media uploads
		bucket := Bucket{
			Name:        "media",
			StorageType: StorageTypeFile,
			Path:        config.MEDIA_BUCKET_DIR,
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Info().Int("buckets", len(buckets)).Msg("Storage buckets loaded")

	cachedStorage = []StorageAPI{}
	for _, bucket := range buckets {
		var storage StorageAPI
		switch bucket.StorageType {
		case StorageTypeFile:
			storage = NewDiskStorage(&bucket)
		case StorageTypeS3:
			storage = NewS3Storage(&bucket)
		default:
			panic(fmt.Sprintf("Storage type unavailable for Bucket %d", bucket.ID))
		}
		cachedStorage = append(cachedStorage, storage)
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

// GetDefaultStorage prefers a disk bucket and falls back to the first one.
func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		return nil
	}
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	return cachedStorage[0]
}
