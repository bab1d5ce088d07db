package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,150}$`)

func SignupForm(c *gin.Context) {
	render(c, http.StatusOK, "signup.tmpl", gin.H{})
}

func Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	password2 := c.PostForm("password2")

	formError := ""
	switch {
	case !usernameRe.MatchString(username):
		formError = "Usernames may only contain letters, digits and _.- characters."
	case password == "":
		formError = "Password is required."
	case password != password2:
		formError = "Passwords do not match."
	}
	if formError == "" {
		if _, err := models.UserByUsername(username); err == nil {
			formError = "This username is already taken."
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err)
			return
		}
	}
	if formError != "" {
		render(c, http.StatusOK, "signup.tmpl", gin.H{
			"formError": formError,
			"username":  username,
			"name":      name,
			"email":     email,
		})
		return
	}

	user, err := models.UserCreate(username, name, email, password)
	if err != nil {
		serverError(c, err)
		return
	}
	auth.LoadSession(c).LoginUser(user.ID)
	c.Redirect(http.StatusFound, "/")
}

func LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.tmpl", gin.H{
		"next": c.Query(auth.NextParam),
	})
}

func Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm(auth.NextParam)
	if next == "" {
		next = c.Query(auth.NextParam)
	}

	user, ok := models.UserLogin(username, password)
	if !ok {
		render(c, http.StatusOK, "login.tmpl", gin.H{
			"formError": "Wrong username or password.",
			"username":  username,
			"next":      next,
		})
		return
	}
	auth.LoadSession(c).LoginUser(user.ID)
	c.Redirect(http.StatusFound, safeNext(next))
}

func Logout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}

// safeNext keeps the post-login redirect on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func ContactForm(c *gin.Context) {
	render(c, http.StatusOK, "contact.tmpl", gin.H{})
}

func Contact(c *gin.Context) {
	message := models.ContactMessage{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Body:    strings.TrimSpace(c.PostForm("body")),
	}
	if message.Email == "" || message.Body == "" {
		render(c, http.StatusOK, "contact.tmpl", gin.H{
			"formError": "Email and message are required.",
			"name":      message.Name,
			"email":     message.Email,
			"subject":   message.Subject,
			"body":      message.Body,
		})
		return
	}
	if err := message.Create(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/thank-you")
}

func ThankYou(c *gin.Context) {
	render(c, http.StatusOK, "thank_you.tmpl", gin.H{})
}
