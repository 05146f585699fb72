// Package config holds the static settings of the artisan API client.
package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// DefaultTimeout is the client-side deadline applied to every request.
const DefaultTimeout = 10 * time.Second

// DefaultBaseURL points at a backend running on the local machine.
const DefaultBaseURL = "http://localhost:8000/api"

// Metiers is the closed list of trades accepted by the backend.
var Metiers = []string{
	"plombier",
	"electricien",
	"macon",
	"couturier",
	"menuisier",
}

// ValidMetier returns true if s is a known trade.
func ValidMetier(s string) bool {
	for _, m := range Metiers {
		if m == s {
			return true
		}
	}
	return false
}

// Endpoints are the resource paths relative to the base URL.
type Endpoints struct {
	Artisans     string
	Commentaires string
	ExportJSON   string
}

// Config is passed explicitly to the client; it is never mutated after construction.
type Config struct {
	BaseURL        string
	Endpoints      Endpoints
	DefaultHeaders map[string]string
	Timeout        time.Duration
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Endpoints: Endpoints{
			Artisans:     "/artisans/",
			Commentaires: "/commentaires/",
			ExportJSON:   "/export-json/",
		},
		DefaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Timeout: DefaultTimeout,
	}
}

// WithBaseURL returns a copy of c pointing at another backend.
func (c Config) WithBaseURL(baseURL string) Config {
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithTimeout returns a copy of c with another request deadline.
// Non-positive values keep the current timeout.
func (c Config) WithTimeout(d time.Duration) Config {
	if d > 0 {
		c.Timeout = d
	}
	return c
}

// BuildURL joins the base URL and an endpoint.
func (c Config) BuildURL(endpoint string) string {
	return c.BaseURL + endpoint
}

// BuildQueryParams renders params as "?k=v&..." or "" when nothing is left.
// Nil values, nil pointers and empty strings are skipped. Keys are sorted.
func BuildQueryParams(params map[string]any) string {
	values := url.Values{}
	for key, value := range params {
		s, ok := stringify(value)
		if !ok {
			continue
		}
		values.Set(key, s)
	}

	encoded := values.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

// stringify converts a scalar to its query form. ok is false for absent values.
func stringify(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	s := fmt.Sprint(v.Interface())
	if s == "" {
		return "", false
	}
	return s, true
}
