// Package places is a client for a Places-style text search API, used as
// the authoritative business directory tier.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// fieldMask lists the place fields requested from the API.
const fieldMask = "places.displayName,places.formattedAddress,places.rating," +
	"places.userRatingCount,places.nationalPhoneNumber,places.websiteUri," +
	"places.googleMapsUri,places.primaryTypeDisplayName"

// Client performs Places API operations.
type Client interface {
	TextSearch(ctx context.Context, query string, maxResults int) ([]Place, error)
}

// Place is one listing returned by the API.
type Place struct {
	DisplayName            DisplayName `json:"displayName"`
	FormattedAddress       string      `json:"formattedAddress"`
	Rating                 float64     `json:"rating"`
	UserRatingCount        int         `json:"userRatingCount"`
	NationalPhoneNumber    string      `json:"nationalPhoneNumber"`
	WebsiteURI             string      `json:"websiteUri"`
	GoogleMapsURI          string      `json:"googleMapsUri"`
	PrimaryTypeDisplayName DisplayName `json:"primaryTypeDisplayName"`
}

// DisplayName holds a localized display string.
type DisplayName struct {
	Text string `json:"text"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate (requests/second).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type textSearchRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

type textSearchResponse struct {
	Places []Place `json:"places"`
}

// TextSearch runs a text query and returns up to maxResults places.
func (c *httpClient) TextSearch(ctx context.Context, query string, maxResults int) ([]Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit wait")
	}

	body, err := json.Marshal(textSearchRequest{TextQuery: query, MaxResultCount: maxResults})
	if err != nil {
		return nil, eris.Wrap(err, "places: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result textSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	return result.Places, nil
}
