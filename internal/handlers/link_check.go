package handlers

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrMalformedLink      = errors.New("link is not a valid http(s) URL")
	ErrDisallowedPlatform = errors.New("link does not belong to an allowed platform")
)

// validateLink checks that a submitted profile link parses as an http(s) URL
// and, when allowedDomains is non-empty, that its host is on (or under) one
// of the allowed platform domains.
func validateLink(raw string, allowedDomains []string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ErrMalformedLink
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrMalformedLink
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ErrMalformedLink
	}

	if len(allowedDomains) == 0 {
		return nil
	}
	for _, domain := range allowedDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}
	return ErrDisallowedPlatform
}
