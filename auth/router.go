package auth

import (
	"net/http"
	"net/url"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

// LoginPath is where anonymous viewers are sent; the original request is
// preserved in the "next" parameter so login can return them there.
const (
	LoginPath = "/auth/login"
	NextParam = "next"
)

// User is authenticated when the handler runs
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper that adds the login check + User pre-loading
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		target := c.Request.URL.RequestURI()
		c.Redirect(http.StatusFound, LoginPath+"?"+NextParam+"="+url.QueryEscape(target))
		return
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
