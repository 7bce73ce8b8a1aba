package prefs

import (
	"net/http"
	"time"
)

// CookiePrefix namespaces preference cookies.
const CookiePrefix = "pref_"

// cookieMaxAge keeps preferences for a year.
const cookieMaxAge = 365 * 24 * time.Hour

// CookieStore is the per-request Store used by the HTTP server: values are
// read from the request cookies and written back as Set-Cookie headers.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	secure bool
	set    map[string]string
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{r: r, w: w, secure: secure, set: make(map[string]string)}
}

// Get implements Store. Values set during the request win over request cookies.
func (c *CookieStore) Get(key string) (string, bool) {
	if v, ok := c.set[key]; ok {
		return v, true
	}
	cookie, err := c.r.Cookie(CookiePrefix + key)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// Set implements Store.
func (c *CookieStore) Set(key, value string) error {
	c.set[key] = value
	http.SetCookie(c.w, &http.Cookie{
		Name:     CookiePrefix + key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
