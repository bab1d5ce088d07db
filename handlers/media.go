package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const thumbBound = 480

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// savePostImage stores an uploaded post illustration together with a JPEG
// thumbnail for the listing pages. Returns the storage paths.
func savePostImage(header *multipart.FileHeader) (imagePath, thumbPath string, err error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return "", "", errors.New("unsupported image type")
	}
	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	// CreateThumb doubles as the decode check, so run it first
	var thumb bytes.Buffer
	if _, err = utils.CreateThumb(thumbBound, file, &thumb); err != nil {
		return "", "", err
	}
	if _, err = file.Seek(0, 0); err != nil {
		return "", "", err
	}

	store := storage.GetDefaultStorage()
	if store == nil {
		return "", "", errors.New("no storage available")
	}
	name := uuid.NewString()
	imagePath = storage.LocationPosts + "/" + name + ext
	thumbPath = storage.LocationThumbs + "/" + name + ".jpg"
	if _, err = store.Save(imagePath, file); err != nil {
		return "", "", err
	}
	if _, err = store.Save(thumbPath, &thumb); err != nil {
		_ = store.Delete(imagePath)
		return "", "", err
	}
	return imagePath, thumbPath, nil
}

// Media serves stored post images: GET /media/posts/<name>
func Media(c *gin.Context) {
	p := path.Clean(c.Param("filepath"))
	if strings.Contains(p, "..") {
		notFound(c)
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		notFound(c)
		return
	}
	p = strings.TrimPrefix(p, "/")
	if store.GetSize(p) < 0 {
		notFound(c)
		return
	}
	c.Header("cache-control", "private, max-age="+strconv.Itoa(utils.CacheMedia))
	store.Serve(p, c.Request, c.Writer)
}
