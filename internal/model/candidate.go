package model

// Platform identifies a social network.
type Platform string

// Supported social platforms.
const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// Candidate is one unverified entity record produced by a single tier.
// Providers return fresh instances; a Candidate is never mutated after
// creation.
type Candidate struct {
	Name        string              `json:"name"`
	Address     string              `json:"address,omitempty"`
	Rating      float64             `json:"rating,omitempty"`
	ReviewCount int                 `json:"review_count,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Email       string              `json:"email,omitempty"`
	Website     string              `json:"website,omitempty"`
	Category    string              `json:"category,omitempty"`
	SourceURL   string              `json:"source_url,omitempty"`
	SocialLinks map[Platform]string `json:"social_links,omitempty"`
}

// Profile is the enrichment record fetched for one social link.
type Profile struct {
	Platform  Platform `json:"platform"`
	URL       string   `json:"url"`
	Name      string   `json:"name,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Followers int      `json:"followers,omitempty"`
	Verified  bool     `json:"verified,omitempty"`
}
