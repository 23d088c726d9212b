package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blockwall/portfolio-pulse/app/feed"
	"github.com/blockwall/portfolio-pulse/app/registry"
)

const (
	socialAPIBaseURL = "https://api.twitter.com"
	socialLinkFormat = "https://x.com/%s/status/%s"
	socialLabel      = "X"

	socialTitleMaxLen = 120
	// X API v2 caps max_results for the user timeline endpoint
	socialAPIMaxResults = 10
)

type userResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type timelineResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
	} `json:"data"`
}

// SocialAdapter fetches recent posts for a company's X handle through
// the API v2 two-step flow: resolve handle to numeric id, then read the
// user timeline. Without a bearer token the adapter is a no-op and
// issues no network calls at all.
type SocialAdapter struct {
	client  *Client
	token   string
	baseURL string
}

func NewSocialAdapter(client *Client, token string) *SocialAdapter {
	return &SocialAdapter{
		client:  client,
		token:   token,
		baseURL: socialAPIBaseURL,
	}
}

func (a *SocialAdapter) Name() string {
	return "social"
}

func (a *SocialAdapter) Type() feed.SourceType {
	return feed.SourceSocial
}

func (a *SocialAdapter) Fetch(ctx context.Context, company *registry.Company, limit int) ([]feed.Entry, error) {
	if a.token == "" || company.XHandle == "" {
		return nil, nil
	}

	headers := map[string]string{"Authorization": "Bearer " + a.token}

	userData, err := a.client.Get(ctx,
		fmt.Sprintf("%s/2/users/by/username/%s", a.baseURL, company.XHandle), headers)
	if err != nil {
		return nil, fmt.Errorf("handle resolution failed: %w", err)
	}

	var user userResponse
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	if user.Data.ID == "" {
		return nil, fmt.Errorf("no user id for handle %s", company.XHandle)
	}

	maxResults := limit
	if maxResults > socialAPIMaxResults {
		maxResults = socialAPIMaxResults
	}

	timelineData, err := a.client.Get(ctx,
		fmt.Sprintf("%s/2/users/%s/tweets?max_results=%d&tweet.fields=created_at,text",
			a.baseURL, user.Data.ID, maxResults), headers)
	if err != nil {
		return nil, fmt.Errorf("timeline fetch failed: %w", err)
	}

	var timeline timelineResponse
	if err := json.Unmarshal(timelineData, &timeline); err != nil {
		return nil, fmt.Errorf("failed to decode timeline response: %w", err)
	}

	entries := make([]feed.Entry, 0, len(timeline.Data))
	for _, post := range timeline.Data {
		entry := feed.Entry{
			Title:        feed.Truncate(strings.ReplaceAll(post.Text, "\n", " "), socialTitleMaxLen),
			Link:         fmt.Sprintf(socialLinkFormat, company.XHandle, post.ID),
			Description:  post.Text,
			PublishedRaw: post.CreatedAt,
			Source:       socialLabel,
		}
		if ts, err := time.Parse(time.RFC3339, post.CreatedAt); err == nil {
			utc := ts.UTC()
			entry.Published = &utc
		}
		entries = append(entries, entry)
		if len(entries) >= limit {
			break
		}
	}

	return entries, nil
}
