package validation

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	PLATFORM_FACEBOOK  = "facebook"
	PLATFORM_INSTAGRAM = "instagram"
)

// SocialLinkResult reports whether a URL points to a supported social
// profile and on which platform.
type SocialLinkResult struct {
	IsValid  bool
	Platform string
	Reason   string
}

var facebookDomains = map[string]bool{
	"facebook.com":   true,
	"m.facebook.com": true,
	"fb.com":         true,
	"fb.me":          true,
}

var instagramDomains = map[string]bool{
	"instagram.com": true,
	"instagr.am":    true,
}

var facebookPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/[a-zA-Z0-9._-]+/?$`),          // profile
	regexp.MustCompile(`^/pages/[^/]+/\d+/?$`),          // page
	regexp.MustCompile(`^/profile\.php$`),               // profile by id param
	regexp.MustCompile(`^/[a-zA-Z0-9._-]+/posts/\d+/?$`), // post
	regexp.MustCompile(`^/groups/\d+/?$`),               // group
	regexp.MustCompile(`^/events/\d+/?$`),               // event
	regexp.MustCompile(`^/photo\.php$`),
	regexp.MustCompile(`^/video\.php$`),
}

var instagramPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/[a-zA-Z0-9._]+/?$`),              // profile
	regexp.MustCompile(`^/p/[a-zA-Z0-9_-]+/?$`),            // post
	regexp.MustCompile(`^/reel/[a-zA-Z0-9_-]+/?$`),         // reel
	regexp.MustCompile(`^/tv/[a-zA-Z0-9_-]+/?$`),           // igtv
	regexp.MustCompile(`^/stories/[a-zA-Z0-9._]+/\d+/?$`),  // story
	regexp.MustCompile(`^/explore/tags/[a-zA-Z0-9_]+/?$`),  // hashtag
}

// ValidateSocialLink checks Facebook and Instagram URLs. The protocol
// defaults to https when missing and a leading "www." is ignored.
func ValidateSocialLink(raw string) SocialLinkResult {
	if strings.TrimSpace(raw) == "" {
		return SocialLinkResult{Reason: "URL is empty"}
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return SocialLinkResult{Reason: "invalid URL format: " + err.Error()}
	}

	domain := strings.ToLower(parsed.Hostname())
	domain = strings.TrimPrefix(domain, "www.")

	switch {
	case facebookDomains[domain]:
		return validateFacebookURL(parsed)
	case instagramDomains[domain]:
		return validateInstagramURL(parsed)
	default:
		return SocialLinkResult{Reason: "domain " + domain + " is not a Facebook or Instagram domain"}
	}
}

func validateFacebookURL(parsed *url.URL) SocialLinkResult {
	path := strings.ToLower(parsed.Path)

	if path == "/profile.php" {
		query := parsed.RawQuery
		if strings.Contains(query, "id=") || strings.Contains(query, "fbid=") {
			return SocialLinkResult{IsValid: true, Platform: PLATFORM_FACEBOOK, Reason: "valid Facebook profile URL"}
		}
	}

	for _, pattern := range facebookPathPatterns {
		if pattern.MatchString(path) {
			return SocialLinkResult{IsValid: true, Platform: PLATFORM_FACEBOOK, Reason: "valid Facebook URL"}
		}
	}
	return SocialLinkResult{Platform: PLATFORM_FACEBOOK, Reason: "invalid Facebook URL format"}
}

func validateInstagramURL(parsed *url.URL) SocialLinkResult {
	path := strings.ToLower(parsed.Path)
	for _, pattern := range instagramPathPatterns {
		if pattern.MatchString(path) {
			return SocialLinkResult{IsValid: true, Platform: PLATFORM_INSTAGRAM, Reason: "valid Instagram URL"}
		}
	}
	return SocialLinkResult{Platform: PLATFORM_INSTAGRAM, Reason: "invalid Instagram URL format"}
}
