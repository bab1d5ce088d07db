package handlers

import (
	"errors"
	"net/http"

	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowIndex lists the posts of every author the viewer follows.
func FollowIndex(c *gin.Context, user *models.User) {
	page, err := models.PaginatePosts(models.FollowedPosts(user.ID), pageParam(c))
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "follow.tmpl", gin.H{
		"page":   &page,
		"viewer": user,
	})
}

func ProfileFollow(c *gin.Context, user *models.User) {
	author, ok := loadAuthor(c)
	if !ok {
		return
	}
	if err := models.FollowCreate(user.ID, author.ID); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

func ProfileUnfollow(c *gin.Context, user *models.User) {
	author, ok := loadAuthor(c)
	if !ok {
		return
	}
	if err := models.FollowDelete(user.ID, author.ID); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

func loadAuthor(c *gin.Context) (*models.User, bool) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return nil, false
	}
	return &author, true
}
