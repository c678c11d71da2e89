// Package facebook is a typed client for the parts of the Graph API the dashboard uses:
// the OAuth dialog and token endpoints, page listing, page posts and page publishing.
package facebook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const (
	providerName = "facebook"

	DefaultGraphURL  = "https://graph.facebook.com"
	DefaultDialogURL = "https://www.facebook.com"
	DefaultVersion   = "v19.0"

	maxResponseBytes = 4 << 20
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// DefaultScopes covers page listing, reading and publishing.
var DefaultScopes = []string{
	"public_profile",
	"pages_show_list",
	"pages_read_engagement",
	"pages_manage_posts",
	"read_insights",
}

const pagePostFields = "id,message,created_time,permalink_url,full_picture,shares," +
	"reactions.summary(total_count).limit(0),comments.summary(total_count).limit(0)," +
	"insights.metric(post_impressions)"

// Config holds everything needed to talk to the Graph API on behalf of one app.
type Config struct {
	AppID       string
	AppSecret   string
	RedirectURL string
	GraphURL    string
	DialogURL   string
	Version     string
	Scopes      []string
	HTTPClient  *http.Client
}

// Client implements providers.FacebookClient.
type Client struct {
	cfg   Config
	oauth *oauth2.Config
	http  *http.Client
}

var _ providers.FacebookClient = (*Client)(nil)

// NewClient fills defaults and builds the OAuth configuration.
func NewClient(cfg Config) *Client {
	if cfg.GraphURL == "" {
		cfg.GraphURL = DefaultGraphURL
	}
	if cfg.DialogURL == "" {
		cfg.DialogURL = DefaultDialogURL
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg.GraphURL = strings.TrimRight(cfg.GraphURL, "/")
	cfg.DialogURL = strings.TrimRight(cfg.DialogURL, "/")

	endpoint := facebook.Endpoint
	endpoint.AuthURL = cfg.DialogURL + "/" + cfg.Version + "/dialog/oauth"
	endpoint.TokenURL = cfg.GraphURL + "/" + cfg.Version + "/oauth/access_token"
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		http: cfg.HTTPClient,
	}
}

func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

func (c *Client) RedirectURL() string {
	return c.cfg.RedirectURL
}

// Exchange trades the authorization code for a short-lived user token.
func (c *Client) Exchange(ctx context.Context, code string) (domain.TokenBundle, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.TokenBundle{}, c.convertOAuthError(err)
	}
	if tok.AccessToken == "" {
		return domain.TokenBundle{}, malformed(http.StatusOK, "token response without access_token", nil)
	}
	return domain.TokenBundle{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn(tok),
	}, nil
}

func (c *Client) ExchangeLongLived(ctx context.Context, shortLivedToken string) (domain.TokenBundle, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.cfg.AppID)
	params.Set("client_secret", c.cfg.AppSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	var out tokenResponse
	if err := c.get(ctx, "/oauth/access_token", params, &out); err != nil {
		return domain.TokenBundle{}, err
	}
	if out.AccessToken == "" {
		return domain.TokenBundle{}, malformed(http.StatusOK, "token response without access_token", nil)
	}
	seconds, _ := out.ExpiresIn.Int64()
	return domain.TokenBundle{AccessToken: out.AccessToken, ExpiresIn: seconds}, nil
}

func (c *Client) Me(ctx context.Context, accessToken string) (*domain.ProviderIdentity, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("access_token", accessToken)

	var out meResponse
	if err := c.get(ctx, "/me", params, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, malformed(http.StatusOK, "identity response without id", nil)
	}
	return &domain.ProviderIdentity{ID: out.ID, Name: out.Name}, nil
}

// ListPages returns the pages the user manages. Entries without an id or a page token
// are skipped; an empty result is apperrors.ErrNoPages.
func (c *Client) ListPages(ctx context.Context, userAccessToken string) ([]domain.FacebookPage, error) {
	params := url.Values{}
	params.Set("fields", "id,name,access_token")
	params.Set("limit", "100")
	params.Set("access_token", userAccessToken)

	var out accountsResponse
	if err := c.get(ctx, "/me/accounts", params, &out); err != nil {
		return nil, err
	}

	pages := make([]domain.FacebookPage, 0, len(out.Data))
	for _, p := range out.Data {
		if p.ID == "" || p.AccessToken == "" {
			continue
		}
		pages = append(pages, domain.FacebookPage{ID: p.ID, Name: p.Name, PageAccessToken: p.AccessToken})
	}
	if len(pages) == 0 {
		return nil, apperrors.ErrNoPages
	}
	return pages, nil
}

func (c *Client) GetPagePosts(ctx context.Context, pageID, pageAccessToken string, limit int) ([]domain.PostSummary, error) {
	if limit <= 0 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	params := url.Values{}
	params.Set("fields", pagePostFields)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("access_token", pageAccessToken)

	var out pagePostsResponse
	if err := c.get(ctx, "/"+url.PathEscape(pageID)+"/posts", params, &out); err != nil {
		return nil, err
	}

	posts := make([]domain.PostSummary, 0, len(out.Data))
	for _, p := range out.Data {
		if p.ID == "" {
			continue
		}
		summary := domain.PostSummary{
			ID:          p.ID,
			Text:        p.Message,
			CreatedTime: parseGraphTime(p.CreatedTime),
			Permalink:   p.PermalinkURL,
			Impressions: p.Insights.impressions(),
			Reactions:   p.Reactions.total(),
			Comments:    p.Comments.total(),
		}
		if p.Shares != nil {
			summary.Shares = p.Shares.Count
		}
		if p.FullPicture != "" {
			img := p.FullPicture
			summary.ImageURL = &img
		}
		summary.ComputeEngagement()
		posts = append(posts, summary)
	}
	return posts, nil
}

// PublishPagePost creates one feed post. With image bytes the photo is uploaded
// unpublished first and attached to the feed post; link is ignored in that case.
func (c *Client) PublishPagePost(ctx context.Context, pageID, pageAccessToken, message string, link *string, image *domain.MediaUpload) (string, error) {
	form := url.Values{}
	form.Set("message", message)
	form.Set("access_token", pageAccessToken)

	switch {
	case image != nil && len(image.Data) > 0:
		photoID, err := c.uploadUnpublishedPhoto(ctx, pageID, pageAccessToken, *image)
		if err != nil {
			return "", err
		}
		media, err := json.Marshal([]attachedMedia{{MediaFBID: photoID}})
		if err != nil {
			return "", fmt.Errorf("encode attached_media: %w", err)
		}
		form.Set("attached_media", string(media))
	case link != nil && *link != "":
		form.Set("link", *link)
	}

	var out idResponse
	if err := c.postForm(ctx, "/"+url.PathEscape(pageID)+"/feed", form, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", malformed(http.StatusOK, "publish response without id", nil)
	}
	return out.ID, nil
}

func (c *Client) uploadUnpublishedPhoto(ctx context.Context, pageID, pageAccessToken string, image domain.MediaUpload) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("published", "false")
	_ = w.WriteField("access_token", pageAccessToken)

	filename := image.Filename
	if filename == "" {
		filename = "image"
	}
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="source"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("create photo part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return "", fmt.Errorf("write photo part: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/"+url.PathEscape(pageID)+"/photos"), &buf)
	if err != nil {
		return "", fmt.Errorf("build photo upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out idResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", malformed(http.StatusOK, "photo upload response without id", nil)
	}
	return out.ID, nil
}

func (c *Client) endpoint(path string) string {
	return c.cfg.GraphURL + "/" + c.cfg.Version + path
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path)+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: facebook request failed: %w", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read facebook response: %w", apperrors.ErrUpstream, err)
	}

	if upErr := parseGraphError(resp.StatusCode, body); upErr != nil {
		return upErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return malformed(resp.StatusCode, "unexpected response shape", err)
	}
	return nil
}

// parseGraphError returns nil for a successful response without an error envelope.
func parseGraphError(status int, body []byte) *apperrors.UpstreamError {
	var env graphError
	_ = json.Unmarshal(body, &env)
	if env.Error == nil && status < http.StatusBadRequest {
		return nil
	}
	upErr := &apperrors.UpstreamError{Provider: providerName, StatusCode: status}
	if env.Error != nil {
		upErr.Code = env.Error.Code
		upErr.Message = env.Error.Message
	}
	upErr.Auth = isAuthCode(upErr.Code) || status == http.StatusUnauthorized
	return upErr
}

// isAuthCode flags token and permission failures.
func isAuthCode(code int) bool {
	switch {
	case code == 190, code == 102, code == 10:
		return true
	case code >= 200 && code <= 299:
		return true
	default:
		return false
	}
}

func (c *Client) convertOAuthError(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		status := 0
		if rErr.Response != nil {
			status = rErr.Response.StatusCode
		}
		if upErr := parseGraphError(status, rErr.Body); upErr != nil {
			if upErr.Message == "" {
				upErr.Message = rErr.ErrorDescription
			}
			upErr.Err = err
			return upErr
		}
	}
	return fmt.Errorf("%w: facebook token exchange failed: %w", apperrors.ErrUpstream, err)
}

func malformed(status int, msg string, err error) *apperrors.UpstreamError {
	return &apperrors.UpstreamError{
		Provider:   providerName,
		StatusCode: status,
		Message:    "malformed facebook response: " + msg,
		Err:        err,
	}
}

func expiresIn(tok *oauth2.Token) int64 {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	if !tok.Expiry.IsZero() {
		return int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	return 0
}

// parseGraphTime accepts the Graph "+0000" offset form and RFC 3339.
func parseGraphTime(raw string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
