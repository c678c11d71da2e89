// Package linkedin is a typed client for LinkedIn OAuth and the v2 UGC post API.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const (
	providerName = "linkedin"

	DefaultAuthURL = "https://www.linkedin.com"
	DefaultAPIURL  = "https://api.linkedin.com"

	restliProtocolHeader  = "X-Restli-Protocol-Version"
	restliProtocolVersion = "2.0.0"

	personURNPrefix  = "urn:li:person:"
	feedImageRecipe  = "urn:li:digitalmediaRecipe:feedshare-image"
	permalinkBaseURL = "https://www.linkedin.com/feed/update/"

	maxResponseBytes = 4 << 20
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// DefaultScopes allow reading the member profile and posting as the member.
var DefaultScopes = []string{"r_liteprofile", "w_member_social", "r_member_social"}

// Config holds the app credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	APIURL       string
	Scopes       []string
	HTTPClient   *http.Client
}

// Client implements providers.LinkedInClient.
type Client struct {
	cfg   Config
	oauth *oauth2.Config
	http  *http.Client
}

var _ providers.LinkedInClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg.AuthURL = strings.TrimRight(cfg.AuthURL, "/")
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	endpoint := linkedin.Endpoint
	endpoint.AuthURL = cfg.AuthURL + "/oauth/v2/authorization"
	endpoint.TokenURL = cfg.AuthURL + "/oauth/v2/accessToken"
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
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

// Exchange posts the code form-encoded with the client credentials in the body.
func (c *Client) Exchange(ctx context.Context, code string) (domain.TokenBundle, error) {
	tok, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return domain.TokenBundle{}, convertOAuthError(err)
	}
	return bundleFromToken(tok)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (domain.TokenBundle, error) {
	if refreshToken == "" {
		return domain.TokenBundle{}, apperrors.ErrCredentialExpired
	}
	// An already expired token forces the source to hit the token endpoint.
	stale := &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Unix(1, 0)}
	tok, err := c.oauth.TokenSource(c.oauthContext(ctx), stale).Token()
	if err != nil {
		return domain.TokenBundle{}, convertOAuthError(err)
	}
	return bundleFromToken(tok)
}

// GetProfile resolves the member behind the token. Ids already in URN form
// (organizations) pass through unchanged.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*domain.ProviderIdentity, error) {
	var out profileResponse
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.APIURL+"/v2/me", accessToken, nil, &out, nil); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, malformed(http.StatusOK, "profile response without id", nil)
	}
	return &domain.ProviderIdentity{
		ID:   ToURN(out.ID),
		Name: strings.TrimSpace(out.LocalizedFirstName + " " + out.LocalizedLastName),
	}, nil
}

// ToURN turns a bare member id into a person URN.
func ToURN(id string) string {
	if strings.HasPrefix(id, "urn:li:") {
		return id
	}
	return personURNPrefix + id
}

// GetPosts lists UGC posts by author. The endpoint reports no engagement, so counts stay zero.
func (c *Client) GetPosts(ctx context.Context, authorURN, accessToken string, limit int) ([]domain.PostSummary, error) {
	if limit <= 0 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	// Rest.li 2.0 list syntax must not have its parentheses escaped.
	query := "q=authors&authors=List(" + url.QueryEscape(authorURN) + ")&sortBy=LAST_MODIFIED&count=" + strconv.Itoa(limit)

	var out ugcPostsResponse
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.APIURL+"/v2/ugcPosts?"+query, accessToken, nil, &out, nil); err != nil {
		return nil, err
	}

	posts := make([]domain.PostSummary, 0, len(out.Elements))
	for _, el := range out.Elements {
		if el.ID == "" {
			continue
		}
		summary := domain.PostSummary{
			ID:        el.ID,
			Permalink: permalinkBaseURL + el.ID,
		}
		created := el.FirstPublishedAt
		if created == 0 {
			created = el.Created.Time
		}
		if created > 0 {
			summary.CreatedTime = time.UnixMilli(created).UTC()
		}
		if content, ok := el.SpecificContent[shareContentKey]; ok {
			summary.Text = content.ShareCommentary.Text
			summary.ImageURL = firstImage(content)
		}
		summary.ComputeEngagement()
		posts = append(posts, summary)
	}
	return posts, nil
}

func firstImage(content shareContent) *string {
	if content.ShareMediaCategory != categoryImage {
		return nil
	}
	for _, m := range content.Media {
		if len(m.Thumbnails) > 0 && m.Thumbnails[0].URL != "" {
			u := m.Thumbnails[0].URL
			return &u
		}
		if m.OriginalURL != "" {
			u := m.OriginalURL
			return &u
		}
	}
	return nil
}

// UploadImage registers a feed image upload for the author and PUTs the bytes.
func (c *Client) UploadImage(ctx context.Context, authorURN, accessToken string, image domain.MediaUpload) (string, error) {
	var reg registerUploadRequest
	reg.RegisterUploadRequest.Recipes = []string{feedImageRecipe}
	reg.RegisterUploadRequest.Owner = authorURN
	reg.RegisterUploadRequest.ServiceRelationships = []serviceRelationship{
		{RelationshipType: "OWNER", Identifier: "urn:li:userGeneratedContent"},
	}

	var out registerUploadResponse
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.APIURL+"/v2/assets?action=registerUpload", accessToken, reg, &out, nil); err != nil {
		return "", err
	}
	mechanism, ok := out.Value.UploadMechanism[uploadMechanismKey]
	if !ok || mechanism.UploadURL == "" || out.Value.Asset == "" {
		return "", malformed(http.StatusOK, "register upload response without upload url or asset", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, mechanism.UploadURL, bytes.NewReader(image.Data))
	if err != nil {
		return "", fmt.Errorf("build image upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if image.ContentType != "" {
		req.Header.Set("Content-Type", image.ContentType)
	} else {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	for k, v := range mechanism.Headers {
		req.Header.Set(k, v)
	}
	if _, err := c.send(req, nil); err != nil {
		return "", err
	}
	return out.Value.Asset, nil
}

// PublishPost creates a UGC post. The media category is NONE, ARTICLE or IMAGE; a link
// and an image asset in the same call are rejected.
func (c *Client) PublishPost(ctx context.Context, authorURN, accessToken, text string, link *string, imageAsset *string) (string, error) {
	hasLink := link != nil && *link != ""
	hasImage := imageAsset != nil && *imageAsset != ""
	if hasLink && hasImage {
		return "", apperrors.NewValidationError("linkedin posts take either a link or an image", "link", "image")
	}

	content := shareContent{
		ShareCommentary:    shareCommentary{Text: text},
		ShareMediaCategory: categoryNone,
	}
	switch {
	case hasImage:
		content.ShareMediaCategory = categoryImage
		content.Media = []shareMedia{{Status: "READY", Media: *imageAsset}}
	case hasLink:
		content.ShareMediaCategory = categoryArticle
		content.Media = []shareMedia{{Status: "READY", OriginalURL: *link}}
	}

	body := ugcPostRequest{
		Author:          authorURN,
		LifecycleState:  "PUBLISHED",
		SpecificContent: map[string]shareContent{shareContentKey: content},
		Visibility:      map[string]string{visibilityKey: "PUBLIC"},
	}

	var out idResponse
	var header http.Header
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.APIURL+"/v2/ugcPosts", accessToken, body, &out, &header); err != nil {
		return "", err
	}
	id := out.ID
	if id == "" && header != nil {
		id = header.Get("X-RestLi-Id")
	}
	if id == "" {
		return "", malformed(http.StatusCreated, "publish response without id", nil)
	}
	return id, nil
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.http)
}

// doJSON sends an authenticated Rest.li request. in is JSON encoded when non-nil;
// respHeader, when non-nil, receives the response headers.
func (c *Client) doJSON(ctx context.Context, method, rawURL, accessToken string, in any, out any, respHeader *http.Header) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode linkedin request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("build linkedin request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set(restliProtocolHeader, restliProtocolVersion)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req, out)
	if err != nil {
		return err
	}
	if respHeader != nil {
		*respHeader = resp.Header
	}
	return nil
}

func (c *Client) send(req *http.Request, out any) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: linkedin request failed: %w", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read linkedin response: %w", apperrors.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, raw)
	}
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, malformed(resp.StatusCode, "unexpected response shape", err)
		}
	}
	return resp, nil
}

func parseAPIError(status int, body []byte) *apperrors.UpstreamError {
	var env apiError
	_ = json.Unmarshal(body, &env)

	msg := env.Message
	if msg == "" {
		msg = env.ErrorDescription
	}
	if msg == "" {
		msg = env.Error
	}
	return &apperrors.UpstreamError{
		Provider:   providerName,
		StatusCode: status,
		Code:       env.ServiceErrorCode,
		Message:    msg,
		Auth:       status == http.StatusUnauthorized || status == http.StatusForbidden,
	}
}

func convertOAuthError(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		status := 0
		if rErr.Response != nil {
			status = rErr.Response.StatusCode
		}
		upErr := parseAPIError(status, rErr.Body)
		if upErr.Message == "" {
			upErr.Message = rErr.ErrorDescription
		}
		// invalid_grant on the token endpoint means the code or refresh token is unusable.
		upErr.Auth = upErr.Auth || rErr.ErrorCode == "invalid_grant"
		upErr.Err = err
		return upErr
	}
	return fmt.Errorf("%w: linkedin token request failed: %w", apperrors.ErrUpstream, err)
}

func bundleFromToken(tok *oauth2.Token) (domain.TokenBundle, error) {
	if tok.AccessToken == "" {
		return domain.TokenBundle{}, malformed(http.StatusOK, "token response without access_token", nil)
	}
	bundle := domain.TokenBundle{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		bundle.ExpiresIn = int64(v)
	case json.Number:
		bundle.ExpiresIn, _ = v.Int64()
	case string:
		bundle.ExpiresIn, _ = strconv.ParseInt(v, 10, 64)
	default:
		if !tok.Expiry.IsZero() {
			bundle.ExpiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
		}
	}
	return bundle, nil
}

func malformed(status int, msg string, err error) *apperrors.UpstreamError {
	return &apperrors.UpstreamError{
		Provider:   providerName,
		StatusCode: status,
		Message:    "malformed linkedin response: " + msg,
		Err:        err,
	}
}
