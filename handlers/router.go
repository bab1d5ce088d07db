package handlers

import (
	"yatube/auth"
	"yatube/cache"

	"github.com/gin-gonic/gin"
)

// cachedForAnonymous shares the rendered listing only between anonymous
// viewers. Logged-in pages carry session-specific navigation and must
// never be served from (or stored in) the shared cache.
func cachedForAnonymous(name string) gin.HandlerFunc {
	cached := cache.Page(name)
	return func(c *gin.Context) {
		if auth.LoadSession(c).UserID() != 0 {
			return
		}
		cached(c)
	}
}

// Register wires every route. Session middleware must already be
// installed on the engine.
func Register(router *gin.Engine) {
	authRouter := &auth.Router{Base: router}
	// Listings
	router.GET("/", cachedForAnonymous("posts:index"), Index)
	router.GET("/group/:slug", GroupPosts)
	router.GET("/profile/:username", Profile)
	router.GET("/posts/:id", PostDetail)
	authRouter.GET("/follow", FollowIndex)
	// Post mutations
	authRouter.GET("/create", PostCreateForm)
	authRouter.POST("/create", PostCreate)
	authRouter.GET("/posts/:id/edit", PostEditForm)
	authRouter.POST("/posts/:id/edit", PostEdit)
	authRouter.POST("/posts/:id/delete", PostDelete)
	authRouter.POST("/posts/:id/comment", AddComment)
	// Follow edges
	authRouter.POST("/profile/:username/follow", ProfileFollow)
	authRouter.POST("/profile/:username/unfollow", ProfileUnfollow)
	// Accounts
	router.GET("/auth/signup", SignupForm)
	router.POST("/auth/signup", Signup)
	router.GET(auth.LoginPath, LoginForm)
	router.POST(auth.LoginPath, Login)
	authRouter.POST("/auth/logout", Logout)
	// Flat pages
	router.GET("/about/author", AboutAuthor)
	router.GET("/about/tech", AboutTech)
	router.GET("/contact", ContactForm)
	router.POST("/contact", Contact)
	router.GET("/thank-you", ThankYou)
	// Media
	router.GET("/media/*filepath", Media)
}
