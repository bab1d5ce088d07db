package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Page serves the rendered output of a listing endpoint from cache for
// PageTTL, keyed by the page number. Mutations do not invalidate it; the
// TTL bounds the staleness.
func Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := name + ":" + c.DefaultQuery("page", "1")
		if data, ok := GetPage(key); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
			c.Abort()
			return
		}
		capture := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()
		if c.Writer.Status() == http.StatusOK {
			SetPage(key, capture.buf.Bytes())
		}
	}
}
