package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	// TokenCookie holds the credential token.
	TokenCookie = "token"
	// PersonalityCookie holds the optional personality integer.
	PersonalityCookie = "personality"
)

// RequestContext is the per-request input handed to an endpoint handler.
type RequestContext struct {
	// Body is the decoded payload: the schema's value when one is configured,
	// the decoded JSON otherwise, url.Values for form bodies, and nil for
	// methods without a body.
	Body any
	// Params are the route parameters, URI-decoded.
	Params map[string]string
	// URL is the absolute request URL.
	URL *url.URL
	// Query holds the URL search parameters.
	Query url.Values
	// Headers has lower-cased names; repeated headers are joined with ", ".
	Headers map[string]string
}

// Param returns the named route parameter, or "" when absent.
func (rc *RequestContext) Param(name string) string {
	return rc.Params[name]
}

// Header returns the named header, or "" when absent.
func (rc *RequestContext) Header(name string) string {
	return rc.Headers[strings.ToLower(name)]
}

func newRequestContext(r *http.Request, body any) *RequestContext {
	return &RequestContext{
		Body:    body,
		Params:  pathParams(r),
		URL:     absoluteURL(r),
		Query:   r.URL.Query(),
		Headers: flattenHeaders(r),
	}
}

// pathParams collects chi route parameters. chi matches against RawPath when
// the request has one, so only then are the values still escaped.
func pathParams(r *http.Request) map[string]string {
	params := make(map[string]string)

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}

	escaped := r.URL.RawPath != ""
	for i, key := range rctx.URLParams.Keys {
		value := rctx.URLParams.Values[i]
		if escaped {
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
		}
		params[key] = value
	}

	return params
}

func absoluteURL(r *http.Request) *url.URL {
	u := *r.URL
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}
	if u.Host == "" {
		u.Host = r.Host
	}
	return &u
}

// flattenHeaders copies headers into a single-value map. Host is added since
// net/http keeps it outside r.Header.
func flattenHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string, len(r.Header)+1)
	for name, values := range r.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	if _, ok := headers["host"]; !ok && r.Host != "" {
		headers["host"] = r.Host
	}
	return headers
}

// tokenFromRequest reads the token cookie, falling back to a bearer
// Authorization header.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	return ""
}

func personalityFromRequest(r *http.Request) *int {
	c, err := r.Cookie(PersonalityCookie)
	if err != nil {
		return nil
	}

	n, ok := leadingInt(c.Value)
	if !ok {
		return nil
	}

	return &n
}

// leadingInt parses the optionally signed decimal prefix of s and ignores the
// rest, so "12abc" is 12 and "3.7" is 3.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
