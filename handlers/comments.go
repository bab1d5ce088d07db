package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddComment handles the comment form on the post detail page. POST only.
func AddComment(c *gin.Context, user *models.User) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}
	post, err := models.PostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return
	}
	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		// Invalid form - back to the detail page with the error inline,
		// nothing persisted
		renderPostDetail(c, &post, "Comment text is required.")
		return
	}
	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     text,
	}
	if err := comment.Create(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(post.ID))
}
