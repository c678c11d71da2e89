// Package media downloads images referenced by URL so they can be uploaded to providers.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/core/ports/providers"
)

// DefaultMaxBytes caps a downloaded image at the Graph API photo limit.
const DefaultMaxBytes = 10 << 20

// Fetcher implements providers.MediaFetcher over plain HTTP GET.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

var _ providers.MediaFetcher = (*Fetcher)(nil)

var errBlockedAddress = errors.New("destination address not allowed")

// NewFetcher builds a Fetcher whose connections may only reach public addresses.
// Only the timeout of client is kept; its transport is replaced.
func NewFetcher(client *http.Client, maxBytes int64) *Fetcher {
	timeout := 30 * time.Second
	if client != nil && client.Timeout > 0 {
		timeout = client.Timeout
	}
	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: publicOnly}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// a proxy would be the dialed address, hiding the real destination
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return newFetcher(&http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("stopped after 5 redirects")
			}
			if !allowedScheme(req.URL.Scheme) {
				return errBlockedAddress
			}
			return nil
		},
	}, maxBytes)
}

func newFetcher(client *http.Client, maxBytes int64) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.MediaUpload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid media url", "mediaUrl")
	}
	if !allowedScheme(req.URL.Scheme) || req.URL.Host == "" {
		return nil, apperrors.NewValidationError("media url must be http or https", "mediaUrl")
	}
	resp, err := f.client.Do(req)
	if errors.Is(err, errBlockedAddress) {
		return nil, apperrors.NewValidationError("media url points to a disallowed address", "mediaUrl")
	}
	if err != nil {
		return nil, &apperrors.UpstreamError{Provider: "media", Message: "Failed to download media", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.UpstreamError{
			Provider:   "media",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Failed to download media (status %d)", resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("media url does not point to an image", "mediaUrl")
	}

	// read one byte past the cap to detect oversize bodies
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &apperrors.UpstreamError{Provider: "media", Message: "Failed to download media", Err: err}
	}
	if int64(len(data)) > f.maxBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("media exceeds %d bytes", f.maxBytes), "mediaUrl")
	}
	if contentType == "" {
		contentType, _, _ = strings.Cut(http.DetectContentType(data), ";")
		if !strings.HasPrefix(contentType, "image/") {
			return nil, apperrors.NewValidationError("media url does not point to an image", "mediaUrl")
		}
	}

	name := path.Base(req.URL.Path)
	if name == "." || name == "/" {
		name = "image"
	}
	return &domain.MediaUpload{Filename: name, ContentType: contentType, Data: data}, nil
}

func allowedScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

// publicOnly runs after DNS resolution, so redirects and rebinding are checked too.
func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", errBlockedAddress, host)
	}
	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() || addr.IsMulticast() {
		return fmt.Errorf("%w: %s", errBlockedAddress, addr)
	}
	return nil
}
