// Package dedup derives duplicate-detection keys from article URLs and removes
// duplicated conflict records.
package dedup

import (
	"fmt"
	"net/url"
	"strings"
)

// Mode defines how article links are compared
type Mode string

// enum of dedup modes
const (
	ModeExact      Mode = "exact"
	ModeNormalized Mode = "normalized"
)

// ParseMode converts string to Mode, empty string is normalized
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeNormalized:
		return ModeNormalized, nil
	case ModeExact:
		return ModeExact, nil
	default:
		return "", fmt.Errorf("unknown dedup mode %q", s)
	}
}

var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "mc_cid": true, "mc_eid": true, "ref": true,
	"cmpid": true, "ocid": true, "at_medium": true, "at_campaign": true,
}

// Key returns the dedup key of a link for the given mode
func Key(mode Mode, link string) string {
	if mode == ModeExact {
		return strings.TrimSpace(link)
	}
	return NormalizeURL(link)
}

// NormalizeURL makes a canonical form of an article URL. Scheme and host are
// lower-cased, "www." and default ports dropped, the fragment and tracking
// parameters removed, remaining query sorted and the trailing slash trimmed.
// Unparseable input is returned trimmed.
func NormalizeURL(link string) string {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if (scheme == "http" && strings.HasSuffix(host, ":80")) || (scheme == "https" && strings.HasSuffix(host, ":443")) {
		host = host[:strings.LastIndex(host, ":")]
	}

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || trackingParams[lk] {
			q.Del(k)
		}
	}

	res := scheme + "://" + host + strings.TrimRight(u.EscapedPath(), "/")
	if enc := q.Encode(); enc != "" { // Encode sorts by key
		res += "?" + enc
	}
	return res
}
