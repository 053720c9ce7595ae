package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const commentPageSize = 100

// Client talks to the YouTube Data API in API-key mode (read-only) or full
// OAuth2 mode when tokens are configured.
type Client struct {
	service     *youtube.Service
	oauthConfig *oauth2.Config
	token       *oauth2.Token
	ctx         context.Context
}

// Config represents YouTube API configuration
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	APIKey       string `json:"api_key"`
}

// NewYouTubeClient creates a new YouTube API client
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IVideoPlatform, error) {
	// Without OAuth credentials fall back to API key only mode (read-only)
	if (config.AccessToken == "" || config.RefreshToken == "") && config.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		return &Client{service: service, ctx: ctx}, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes: []string{
			youtube.YoutubeReadonlyScope,
			youtube.YoutubeForceSslScope,
		},
		Endpoint: google.Endpoint,
	}

	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
	}

	httpClient := oauth2Config.Client(ctx, token)
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:     service,
		oauthConfig: oauth2Config,
		token:       token,
		ctx:         ctx,
	}, nil
}

// GetMetadata retrieves public metadata for a video.
func (c *Client) GetMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	if err := c.refreshTokenIfNeeded(); err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	call := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoID).
		Context(ctx)
	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, model.ErrVideoNotFound
	}

	return convertToMetadata(response.Items[0]), nil
}

// ListComments fetches one page of top-level comment threads, newest first.
// The API has no server-side publishedAfter filter for comment threads, so
// callers filter on the returned publish timestamps.
func (c *Client) ListComments(ctx context.Context, videoID, pageToken string, publishedAfter time.Time) (*dto.CommentPage, error) {
	if err := c.refreshTokenIfNeeded(); err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	call := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(commentPageSize).
		Order("time").
		TextFormat("plainText").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		if commentsDisabled(err) {
			return nil, model.ErrCommentsDisabled
		}
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return nil, model.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to list comment threads: %w", err)
	}

	page := &dto.CommentPage{NextPageToken: response.NextPageToken}
	for _, thread := range response.Items {
		if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
			continue
		}
		top := thread.Snippet.TopLevelComment
		snippet := top.Snippet
		if snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, snippet.PublishedAt)
		comment := model.Comment{
			CommentID:   top.Id,
			VideoID:     videoID,
			Author:      snippet.AuthorDisplayName,
			AuthorImage: snippet.AuthorProfileImageUrl,
			Text:        snippet.TextDisplay,
			LikeCount:   snippet.LikeCount,
			ReplyCount:  thread.Snippet.TotalReplyCount,
			PublishedAt: publishedAt,
			CreatedAt:   time.Now().UTC(),
		}
		if snippet.AuthorChannelId != nil {
			comment.AuthorChannelID = snippet.AuthorChannelId.Value
		}
		page.Comments = append(page.Comments, comment)
	}
	return page, nil
}

// commentsDisabled recognizes the API's 403 commentsDisabled rejection.
func commentsDisabled(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != 403 {
		return false
	}
	for _, e := range gerr.Errors {
		if e.Reason == "commentsDisabled" {
			return true
		}
	}
	return false
}

func convertToMetadata(video *youtube.Video) *model.VideoMetadata {
	publishedAt, _ := time.Parse(time.RFC3339, video.Snippet.PublishedAt)

	meta := &model.VideoMetadata{
		VideoID:     video.Id,
		Title:       video.Snippet.Title,
		Description: video.Snippet.Description,
		ChannelName: video.Snippet.ChannelTitle,
		PublishedAt: publishedAt,
	}
	if video.Statistics != nil {
		meta.ViewCount = int64(video.Statistics.ViewCount)
		meta.LikeCount = int64(video.Statistics.LikeCount)
		meta.CommentCount = int64(video.Statistics.CommentCount)
	}
	if video.ContentDetails != nil {
		meta.Duration = video.ContentDetails.Duration
	}
	if thumbs := video.Snippet.Thumbnails; thumbs != nil {
		switch {
		case thumbs.High != nil:
			meta.ThumbnailURL = thumbs.High.Url
		case thumbs.Medium != nil:
			meta.ThumbnailURL = thumbs.Medium.Url
		case thumbs.Default != nil:
			meta.ThumbnailURL = thumbs.Default.Url
		}
	}
	return meta
}

// refreshTokenIfNeeded checks if the token is expired and refreshes it automatically
func (c *Client) refreshTokenIfNeeded() error {
	// In API key mode (no oauthConfig/token) nothing to do
	if c.oauthConfig == nil || c.token == nil {
		return nil
	}
	if c.token.Expiry.IsZero() || time.Until(c.token.Expiry) < 5*time.Minute {
		newToken, err := c.oauthConfig.TokenSource(c.ctx, c.token).Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		httpClient := c.oauthConfig.Client(c.ctx, newToken)
		service, err := youtube.NewService(c.ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			return fmt.Errorf("failed to recreate YouTube service with refreshed token: %w", err)
		}
		c.service = service
	}
	return nil
}
