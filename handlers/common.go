package handlers

import (
	"net/http"
	"strconv"

	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// viewerOf returns the authenticated viewer or nil.
func viewerOf(c *gin.Context) *models.User {
	viewer := auth.LoadSession(c).User()
	if viewer.ID == 0 {
		return nil
	}
	return &viewer
}

// render injects the viewer into the template data so every page can show
// the right header links.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["viewer"]; !ok {
		viewer := auth.LoadSession(c).User()
		if viewer.ID != 0 {
			data["viewer"] = &viewer
		}
	}
	c.HTML(status, name, data)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "not_found.tmpl", gin.H{})
}

func serverError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request handling failed")
	render(c, http.StatusInternalServerError, "server_error.tmpl", gin.H{})
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
