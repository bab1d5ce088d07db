package models

import (
	"time"

	"yatube/db"
	"yatube/storage"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// DoAutoDatabaseCleanup sweeps up rows orphaned by out-of-band deletions
// (admin SQL, cascades the database did not enforce) and media files no
// longer referenced by any post.
func DoAutoDatabaseCleanup() {
	var rows int64

	result := db.Instance.
		Where("post_id NOT IN (?)", db.Instance.Model(&Post{}).Select("id")).
		Delete(&Comment{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Cleanup of orphaned comments failed")
	} else {
		rows += result.RowsAffected
	}

	users := db.Instance.Model(&User{}).Select("id")
	result = db.Instance.
		Where("user_id NOT IN (?) OR author_id NOT IN (?)", users, users).
		Delete(&Follow{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Cleanup of orphaned follows failed")
	} else {
		rows += result.RowsAffected
	}

	log.Info().Int64("rows", rows).Msg("Database cleanup finished")
	cleanupOrphanedMedia()
}

// cleanupOrphanedMedia removes stored images that no post references.
// Deleting a post only deletes its rows; the files are reclaimed here.
func cleanupOrphanedMedia() {
	store := storage.GetDefaultStorage()
	if store == nil {
		return
	}

	var posts []Post
	if err := db.Instance.Select("image_path", "thumb_path").Find(&posts).Error; err != nil {
		log.Error().Err(err).Msg("Media cleanup could not list posts")
		return
	}
	referenced := lo.FlatMap(posts, func(p Post, _ int) []string {
		return []string{p.ImagePath, p.ThumbPath}
	})

	// Files younger than an hour may belong to an upload still in flight.
	files, err := store.ListFiles(storage.LocationPosts, time.Hour)
	if err != nil {
		log.Error().Err(err).Msg("Media cleanup could not list files")
		return
	}
	removed := 0
	for _, file := range files {
		if lo.Contains(referenced, file) {
			continue
		}
		if err := store.Delete(file); err != nil {
			log.Error().Err(err).Str("path", file).Msg("Media cleanup could not delete file")
			continue
		}
		removed++
	}
	log.Info().Int("files", removed).Msg("Media cleanup finished")
}
