package fetch

import (
	"net/url"
	"strings"
)

// placeholder values that mean "no website" in scraped CSV data
var nullishHosts = map[string]bool{
	"nan":  true,
	"none": true,
	"null": true,
}

// NormalizeURL converts an arbitrary user-entered website value into a
// fetchable https URL. Bare second-level domains (exactly one dot in the
// host) gain a www. prefix; subdomains are left intact; the path defaults
// to /. Query and fragment are dropped. Returns false when no host can be
// derived, in which case the caller skips the fetch entirely.
func NormalizeURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || nullishHosts[strings.ToLower(s)] {
		return "", false
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	host := u.Host
	path := u.Path

	// Inputs like "https:///example.com" parse with an empty host; treat the
	// path as the host.
	if host == "" && path != "" {
		host, path = path, ""
	}
	if host == "" {
		return "", false
	}

	if !strings.HasPrefix(strings.ToLower(host), "www.") && strings.Count(host, ".") == 1 {
		host = "www." + host
	}

	if path == "" {
		path = "/"
	}

	normalized := url.URL{Scheme: "https", Host: host, Path: path}
	return normalized.String(), true
}
