package httpx

import (
	"net/url"
	"strings"
)

// SafeRedirectPath returns p if it is a local absolute path, otherwise
// fallback. Scheme-relative ("//host") and backslash tricks are refused so a
// login origin can never bounce a visitor off-site.
func SafeRedirectPath(p, fallback string) string {
	if p == "" || !strings.HasPrefix(p, "/") {
		return fallback
	}
	if strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return fallback
	}

	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return p
}
