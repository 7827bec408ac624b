// Package social detects social platforms from URLs and implements the
// social search and profile enrichment provider contracts.
package social

import (
	"strings"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/normalize"
)

// platformDomains maps registrable domains to platforms.
var platformDomains = map[string]model.Platform{
	"instagram.com": model.PlatformInstagram,
	"facebook.com":  model.PlatformFacebook,
	"fb.com":        model.PlatformFacebook,
	"twitter.com":   model.PlatformTwitter,
	"x.com":         model.PlatformTwitter,
	"linkedin.com":  model.PlatformLinkedIn,
	"tiktok.com":    model.PlatformTikTok,
	"youtube.com":   model.PlatformYouTube,
	"youtu.be":      model.PlatformYouTube,
}

// searchDomains maps platforms to the domain used in site-scoped web
// searches.
var searchDomains = map[model.Platform]string{
	model.PlatformInstagram: "instagram.com",
	model.PlatformFacebook:  "facebook.com",
	model.PlatformTwitter:   "x.com",
	model.PlatformLinkedIn:  "linkedin.com",
	model.PlatformTikTok:    "tiktok.com",
	model.PlatformYouTube:   "youtube.com",
}

// PlatformFromURL returns the platform a URL belongs to, if any.
func PlatformFromURL(rawURL string) (model.Platform, bool) {
	host := normalize.Domain(rawURL)
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	for domain, platform := range platformDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform, true
		}
	}
	return "", false
}

// SearchDomain returns the domain used in site-scoped searches for a
// platform, or "" when the platform is unknown.
func SearchDomain(p model.Platform) string {
	return searchDomains[p]
}

// ExtractLinks collects the first URL per recognized platform from a
// list of URLs, preserving only profile-looking links (a path segment
// beyond the bare domain).
func ExtractLinks(urls []string) map[model.Platform]string {
	links := make(map[model.Platform]string)
	for _, u := range urls {
		platform, ok := PlatformFromURL(u)
		if !ok {
			continue
		}
		if _, exists := links[platform]; exists {
			continue
		}
		if !strings.Contains(strings.TrimSuffix(normalize.Domain(u), "/"), "/") {
			continue
		}
		links[platform] = u
	}
	return links
}
