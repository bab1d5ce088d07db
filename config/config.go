package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	MYSQL_DSN        = ""          // MySQL will be used if this is set
	SQLITE_FILE      = "yatube.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS     = "0.0.0.0:8000"
	TLS_DOMAINS      = "" // e.g. "example.com,www.example.com"
	SESSION_KEY      = "please change me in production"
	SESSION_MAX_AGE  = 30 * 86400 // 30 days
	MEDIA_BUCKET_DIR = "media"    // Used for creating the initial disk bucket
	TMP_DIR          = "/tmp"     // Local scratch space for S3-backed media
	DEBUG_MODE       = true
)

func init() {
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("MEDIA_BUCKET_DIR", &MEDIA_BUCKET_DIR)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
