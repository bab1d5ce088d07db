package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"yatube/models"
	"yatube/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Index is the global listing. Its rendered output sits behind the
// listing-page cache for anonymous viewers (see cachedForAnonymous).
func Index(c *gin.Context) {
	page, err := models.PaginatePosts(models.AllPosts(), pageParam(c))
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "index.tmpl", gin.H{"page": &page})
}

func GroupPosts(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return
	}
	page, err := models.PaginatePosts(models.GroupPosts(group.ID), pageParam(c))
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "group_list.tmpl", gin.H{
		"group": &group,
		"page":  &page,
	})
}

func Profile(c *gin.Context) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return
	}
	page, err := models.PaginatePosts(models.AuthorPosts(author.ID), pageParam(c))
	if err != nil {
		serverError(c, err)
		return
	}
	data := gin.H{
		"author":     &author,
		"page":       &page,
		"postsCount": page.Total,
	}
	viewer := viewerOf(c)
	if viewer != nil && viewer.ID != author.ID {
		data["viewer"] = viewer
		data["following"] = models.IsFollowing(viewer.ID, author.ID)
		data["followable"] = true
	}
	render(c, http.StatusOK, "profile.tmpl", data)
}

func PostDetail(c *gin.Context) {
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
	renderPostDetail(c, &post, "")
}

func renderPostDetail(c *gin.Context, post *models.Post, commentError string) {
	comments, err := models.CommentsForPost(post.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	status := http.StatusOK
	data := gin.H{
		"post":       post,
		"comments":   comments,
		"postsCount": models.AuthorPostCount(post.AuthorID),
	}
	if commentError != "" {
		data["commentError"] = commentError
	}
	render(c, status, "post_detail.tmpl", data)
}

func PostCreateForm(c *gin.Context, user *models.User) {
	renderPostForm(c, user, gin.H{"isEdit": false})
}

func PostCreate(c *gin.Context, user *models.User) {
	text := strings.TrimSpace(c.PostForm("text"))
	groupID, groupErr := parseGroupID(c.PostForm("group"))
	formError := ""
	if text == "" {
		formError = "Post text is required."
	} else if groupErr != nil {
		formError = "Unknown group."
	}
	if formError != "" {
		renderPostForm(c, user, gin.H{
			"isEdit":    false,
			"formError": formError,
			"text":      text,
		})
		return
	}

	post := models.Post{
		AuthorID: user.ID,
		GroupID:  groupID,
		Text:     text,
	}
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, thumbPath, err := savePostImage(file)
		if err != nil {
			renderPostForm(c, user, gin.H{
				"isEdit":    false,
				"formError": "The uploaded file is not a valid image.",
				"text":      text,
			})
			return
		}
		post.ImagePath = imagePath
		post.ThumbPath = thumbPath
	}
	if err := post.Create(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func PostEditForm(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	data := gin.H{
		"isEdit": true,
		"post":   post,
		"text":   post.Text,
	}
	if post.GroupID != nil {
		data["groupID"] = *post.GroupID
	}
	renderPostForm(c, user, data)
}

func PostEdit(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	text := strings.TrimSpace(c.PostForm("text"))
	groupID, groupErr := parseGroupID(c.PostForm("group"))
	formError := ""
	if text == "" {
		formError = "Post text is required."
	} else if groupErr != nil {
		formError = "Unknown group."
	}
	if formError != "" {
		renderPostForm(c, user, gin.H{
			"isEdit":    true,
			"post":      post,
			"formError": formError,
			"text":      text,
		})
		return
	}

	post.Text = text
	post.GroupID = groupID
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, thumbPath, err := savePostImage(file)
		if err != nil {
			renderPostForm(c, user, gin.H{
				"isEdit":    true,
				"post":      post,
				"formError": "The uploaded file is not a valid image.",
				"text":      text,
			})
			return
		}
		deletePostMedia(post)
		post.ImagePath = imagePath
		post.ThumbPath = thumbPath
	}
	if err := post.Save(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(post.ID))
}

func PostDelete(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	if err := post.Delete(); err != nil {
		serverError(c, err)
		return
	}
	deletePostMedia(post)
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

// loadOwnPost fetches the post and enforces the author-only rule: anyone
// else is bounced to the post detail page, not shown an error.
func loadOwnPost(c *gin.Context, user *models.User) (*models.Post, bool) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return nil, false
	}
	post, err := models.PostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return nil, false
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return nil, false
	}
	return &post, true
}

func renderPostForm(c *gin.Context, user *models.User, data gin.H) {
	groups, err := models.GroupList()
	if err != nil {
		serverError(c, err)
		return
	}
	data["groups"] = groups
	data["viewer"] = user
	if _, ok := data["groupID"]; !ok {
		data["groupID"] = uint64(0)
	}
	render(c, http.StatusOK, "post_form.tmpl", data)
}

func parseGroupID(raw string) (*uint64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	if _, err := models.GroupByID(id); err != nil {
		return nil, err
	}
	return &id, nil
}

func deletePostMedia(post *models.Post) {
	store := storage.GetDefaultStorage()
	if store == nil {
		return
	}
	if post.ImagePath != "" {
		_ = store.Delete(post.ImagePath)
	}
	if post.ThumbPath != "" {
		_ = store.Delete(post.ThumbPath)
	}
}

func postDetailPath(id uint64) string {
	return fmt.Sprintf("/posts/%d", id)
}
