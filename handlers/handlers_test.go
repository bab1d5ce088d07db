package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/storage"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	db.Init("", "file:handlers_test?mode=memory&cache=shared")
	models.Init()

	mediaDir, err := os.MkdirTemp("", "yatube-handlers-test")
	if err != nil {
		panic(err)
	}
	config.MEDIA_BUCKET_DIR = mediaDir
	storage.Init()
	if err := cache.Init(); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(mediaDir)
	os.Exit(code)
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.LoadHTMLGlob("../templates/*.tmpl")
	store := gormsessions.NewStore(db.Instance, true, []byte("test-session-key"))
	router.Use(sessions.Sessions("yatube_session", store))
	Register(router)
	return router
}

// client replays the session cookie between requests, like a browser would.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	return &client{t: t, router: newServer(t), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
		} else {
			c.cookies[cookie.Name] = cookie
		}
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do("GET", target, nil)
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	return c.do("POST", target, form)
}

func makeUser(t *testing.T, username string) models.User {
	t.Helper()
	user, err := models.UserCreate(username, "", username+"@example.com", "pass12345")
	require.NoError(t, err)
	return user
}

func (c *client) login(username string) {
	w := c.post("/auth/login", url.Values{
		"username": {username},
		"password": {"pass12345"},
	})
	require.Equal(c.t, http.StatusFound, w.Code)
	require.Equal(c.t, "/", w.Header().Get("Location"))
}

func makePost(t *testing.T, author models.User, text string) models.Post {
	t.Helper()
	post := models.Post{AuthorID: author.ID, Text: text}
	require.NoError(t, post.Create())
	return post
}

func TestSignupThenAutoLogin(t *testing.T) {
	c := newClient(t)
	w := c.post("/auth/signup", url.Values{
		"username":  {"h_newcomer"},
		"email":     {"newcomer@example.com"},
		"password":  {"pass12345"},
		"password2": {"pass12345"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The fresh session is already authenticated
	w = c.get("/create")
	assert.Equal(t, http.StatusOK, w.Code)

	// Taken username bounces back to the form
	w = newClient(t).post("/auth/signup", url.Values{
		"username":  {"h_newcomer"},
		"password":  {"pass12345"},
		"password2": {"pass12345"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already taken")
}

func TestSignupValidation(t *testing.T) {
	c := newClient(t)
	w := c.post("/auth/signup", url.Values{
		"username":  {"bad name!"},
		"password":  {"pass12345"},
		"password2": {"pass12345"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "letters, digits")

	w = c.post("/auth/signup", url.Values{
		"username":  {"h_mismatch"},
		"password":  {"pass12345"},
		"password2": {"different"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "do not match")
}

func TestLoginNextRedirect(t *testing.T) {
	makeUser(t, "h_next")
	c := newClient(t)

	w := c.get("/create")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fcreate", w.Header().Get("Location"))

	w = c.post("/auth/login", url.Values{
		"username": {"h_next"},
		"password": {"pass12345"},
		"next":     {"/create"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create", w.Header().Get("Location"))
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	makeUser(t, "h_offsite")
	for _, next := range []string{"https://evil.example", "//evil.example", "evil"} {
		c := newClient(t)
		w := c.post("/auth/login", url.Values{
			"username": {"h_offsite"},
			"password": {"pass12345"},
			"next":     {next},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	makeUser(t, "h_wrongpw")
	w := newClient(t).post("/auth/login", url.Values{
		"username": {"h_wrongpw"},
		"password": {"nope"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong username or password")
}

func TestLogoutEndsSession(t *testing.T) {
	makeUser(t, "h_leaver")
	c := newClient(t)
	c.login("h_leaver")

	w := c.post("/auth/logout", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = c.get("/create")
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login?next="))
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	author := makeUser(t, "h_commented")
	post := makePost(t, author, "a post awaiting comments")

	target := fmt.Sprintf("/posts/%d/comment", post.ID)
	w := newClient(t).post(target, url.Values{"text": {"drive-by"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?next="+url.QueryEscape(target), w.Header().Get("Location"))

	var count int64
	db.Instance.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Zero(t, count, "nothing may be persisted for anonymous viewers")
}

func TestCommentFlow(t *testing.T) {
	author := makeUser(t, "h_blogger")
	post := makePost(t, author, "come argue below")
	commenter := makeUser(t, "h_arguer")

	c := newClient(t)
	c.login("h_arguer")
	target := fmt.Sprintf("/posts/%d/comment", post.ID)

	// Empty text: back to the detail page, nothing saved
	w := c.post(target, url.Values{"text": {"   "}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Comment text is required")

	w = c.post(target, url.Values{"text": {"strong disagree"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	w = c.get(fmt.Sprintf("/posts/%d", post.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "strong disagree")
	assert.Contains(t, w.Body.String(), commenter.Username)
}

func TestPostCreateEditDelete(t *testing.T) {
	makeUser(t, "h_writer")
	c := newClient(t)
	c.login("h_writer")

	w := c.post("/create", url.Values{"text": {"my first draft"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/h_writer", w.Header().Get("Location"))

	w = c.get("/profile/h_writer")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "my first draft")

	var post models.Post
	require.NoError(t, db.Instance.Where("text = ?", "my first draft").First(&post).Error)

	w = c.post(fmt.Sprintf("/posts/%d/edit", post.ID), url.Values{"text": {"my final draft"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	w = c.get(fmt.Sprintf("/posts/%d", post.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "my final draft")

	w = c.post(fmt.Sprintf("/posts/%d/delete", post.ID), nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/h_writer", w.Header().Get("Location"))

	w = c.get(fmt.Sprintf("/posts/%d", post.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostCreateRequiresText(t *testing.T) {
	makeUser(t, "h_empty")
	c := newClient(t)
	c.login("h_empty")

	w := c.post("/create", url.Values{"text": {"   "}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post text is required")
	assert.Zero(t, models.AuthorPostCount(mustID(t, "h_empty")))
}

func mustID(t *testing.T, username string) uint64 {
	t.Helper()
	user, err := models.UserByUsername(username)
	require.NoError(t, err)
	return user.ID
}

func TestEditByNonAuthorRedirectsToDetail(t *testing.T) {
	author := makeUser(t, "h_owner")
	post := makePost(t, author, "hands off")
	makeUser(t, "h_intruder")

	c := newClient(t)
	c.login("h_intruder")
	detail := fmt.Sprintf("/posts/%d", post.ID)

	w := c.get(fmt.Sprintf("/posts/%d/edit", post.ID))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	w = c.post(fmt.Sprintf("/posts/%d/edit", post.ID), url.Values{"text": {"hijacked"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	w = c.post(fmt.Sprintf("/posts/%d/delete", post.ID), nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	unchanged, err := models.PostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hands off", unchanged.Text)
}

func TestFollowFeedScenario(t *testing.T) {
	author := makeUser(t, "h_followed")
	makePost(t, author, "only for followers of h_followed")
	makeUser(t, "h_reader")

	c := newClient(t)
	c.login("h_reader")

	w := c.get("/follow")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "only for followers of h_followed")

	w = c.post("/profile/h_followed/follow", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/h_followed", w.Header().Get("Location"))

	w = c.get("/follow")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "only for followers of h_followed")

	w = c.post("/profile/h_followed/unfollow", nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = c.get("/follow")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "only for followers of h_followed")
}

func TestFollowSelfThroughHandlerIsNoOp(t *testing.T) {
	me := makeUser(t, "h_selfie")
	makePost(t, me, "my own post about h_selfie things")

	c := newClient(t)
	c.login("h_selfie")

	w := c.post("/profile/h_selfie/follow", nil)
	require.Equal(t, http.StatusFound, w.Code)

	assert.False(t, models.IsFollowing(me.ID, me.ID))
	w = c.get("/follow")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "my own post about h_selfie things")
}

func TestFollowUnknownAuthor(t *testing.T) {
	makeUser(t, "h_lost")
	c := newClient(t)
	c.login("h_lost")
	w := c.post("/profile/h_ghost/follow", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexCacheStaleness(t *testing.T) {
	cache.Clear()
	author := makeUser(t, "h_cached")
	makePost(t, author, "the post that stays")
	doomed := makePost(t, author, "the post that goes")

	c := newClient(t)
	first := c.get("/")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "the post that goes")

	// A deletion within the TTL is not visible: the same bytes come back
	require.NoError(t, doomed.Delete())
	second := c.get("/")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Body.String(), "the post that goes")

	// Once the cached render is gone the deletion shows up
	cache.Clear()
	third := c.get("/")
	require.Equal(t, http.StatusOK, third.Code)
	assert.NotContains(t, third.Body.String(), "the post that goes")
	assert.Contains(t, third.Body.String(), "the post that stays")
}

func TestIndexCacheNotSharedAcrossSessions(t *testing.T) {
	cache.Clear()
	makeUser(t, "h_private")
	author := makeUser(t, "h_author_public")
	makePost(t, author, "a post for everyone")

	logged := newClient(t)
	logged.login("h_private")

	// The logged-in render is session-specific and must not warm the cache
	w := logged.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "h_private")
	assert.Contains(t, w.Body.String(), "Log out")

	anon := newClient(t)
	w = anon.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a post for everyone")
	assert.NotContains(t, w.Body.String(), "h_private")
	assert.NotContains(t, w.Body.String(), "Log out")

	// Nor is the anonymous render now in the cache served to the viewer
	w = logged.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "h_private")
	assert.Contains(t, w.Body.String(), "Log out")
}

func TestGroupListing(t *testing.T) {
	group := models.Group{Title: "Handler Tests", Slug: "handler-tests", Description: "meta"}
	require.NoError(t, db.Instance.Create(&group).Error)
	author := makeUser(t, "h_grouped")
	post := models.Post{AuthorID: author.ID, GroupID: &group.ID, Text: "filed under handler-tests"}
	require.NoError(t, post.Create())

	c := newClient(t)
	w := c.get("/group/handler-tests")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Handler Tests")
	assert.Contains(t, w.Body.String(), "filed under handler-tests")

	assert.Equal(t, http.StatusNotFound, c.get("/group/no-such-group").Code)
}

func TestProfileShowsFollowState(t *testing.T) {
	makeUser(t, "h_profiled")
	makeUser(t, "h_visitor")

	// Anonymous viewers get no follow button
	w := newClient(t).get("/profile/h_profiled")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "/profile/h_profiled/follow")

	c := newClient(t)
	c.login("h_visitor")
	w = c.get("/profile/h_profiled")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/profile/h_profiled/follow")

	c.post("/profile/h_profiled/follow", nil)
	w = c.get("/profile/h_profiled")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/profile/h_profiled/unfollow")

	assert.Equal(t, http.StatusNotFound, c.get("/profile/h_nobody").Code)
}

func TestContactFlow(t *testing.T) {
	c := newClient(t)
	w := c.post("/contact", url.Values{
		"name":  {"A Reader"},
		"email": {"reader@example.com"},
		"body":  {"love the site"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/thank-you", w.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, c.get("/thank-you").Code)

	var count int64
	db.Instance.Model(&models.ContactMessage{}).Where("email = ?", "reader@example.com").Count(&count)
	assert.Equal(t, int64(1), count)

	w = c.post("/contact", url.Values{"name": {"No Email"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email and message are required")
}

func TestAboutPages(t *testing.T) {
	c := newClient(t)
	assert.Equal(t, http.StatusOK, c.get("/about/author").Code)
	assert.Equal(t, http.StatusOK, c.get("/about/tech").Code)
}

func TestPostDetailUnknown(t *testing.T) {
	c := newClient(t)
	assert.Equal(t, http.StatusNotFound, c.get("/posts/999999").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/posts/banana").Code)
}

func TestMediaPathTraversalRejected(t *testing.T) {
	c := newClient(t)
	w := c.get("/media/..%2Fsecrets.txt")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, c.get("/media/posts/unknown.jpg").Code)
}
