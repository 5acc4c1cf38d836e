// Package imagestore uploads unit pictures to a Cloudinary-compatible image
// service using signed form uploads and hands back the public URL.
package imagestore

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/propfolio/propfolio-backend/internal/platform/config"
)

// Store is the object-storage collaborator used by the unit service.
type Store interface {
	// Upload stores a base64-encoded image under objectPath and returns its
	// public URL.
	Upload(ctx context.Context, objectPath string, base64Image string) (string, error)

	// Remove deletes previously stored objects by their public URLs.
	// Callers treat failures as warnings; old images are not load-bearing.
	Remove(ctx context.Context, urls []string) error
}

// Client talks to the image service over HTTP.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	httpClient *http.Client
}

// NewClient builds a Store from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		cloudName:  cfg.ImageStoreCloudName,
		apiKey:     cfg.ImageStoreAPIKey,
		apiSecret:  cfg.ImageStoreAPISecret,
		folder:     cfg.ImageStoreFolder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Store = (*Client)(nil)

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload performs a signed image upload.
func (c *Client) Upload(ctx context.Context, objectPath string, base64Image string) (string, error) {
	if base64Image == "" {
		return "", fmt.Errorf("empty image payload")
	}
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return "", fmt.Errorf("image store credentials not configured")
	}

	// Strip a data-URI prefix if present.
	payload := base64Image
	if i := strings.Index(base64Image, ","); i != -1 {
		payload = base64Image[i+1:]
	}

	publicID := objectPath
	if c.folder != "" {
		publicID = c.folder + "/" + objectPath
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + c.cloudName + "/image/upload"
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", c.apiKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", c.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	respBody, status, err := c.post(ctx, endpoint, form)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("image upload failed with status %d: %s", status, string(respBody))
	}

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse image upload response: %w", err)
	}
	if parsed.Error.Message != "" {
		return "", fmt.Errorf("image service error: %s", parsed.Error.Message)
	}

	publicURL := parsed.SecureURL
	if publicURL == "" {
		publicURL = parsed.URL
	}
	if publicURL == "" {
		return "", fmt.Errorf("image service returned no URL")
	}
	return publicURL, nil
}

// Remove deletes stored objects by public URL. Each failure is reported in
// the combined error but does not stop the remaining deletions.
func (c *Client) Remove(ctx context.Context, urls []string) error {
	var failed []string
	for _, u := range urls {
		publicID, ok := publicIDFromURL(u)
		if !ok {
			failed = append(failed, u)
			continue
		}
		if err := c.destroy(ctx, publicID); err != nil {
			failed = append(failed, u)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to remove %d object(s): %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func (c *Client) destroy(ctx context.Context, publicID string) error {
	endpoint := "https://api.cloudinary.com/v1_1/" + c.cloudName + "/image/destroy"
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", c.apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", c.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	body, status, err := c.post(ctx, endpoint, form)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("image destroy failed with status %d: %s", status, string(body))
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create image service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("image service request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read image service response: %w", err)
	}
	return body, res.StatusCode, nil
}

// sign produces the SHA1 request signature the image API expects.
func (c *Client) sign(toSign string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(toSign+c.apiSecret)))
}

// publicIDFromURL extracts the stored public id from a delivery URL of the
// form .../image/upload/v{version}/{public_id}.{ext}.
func publicIDFromURL(imageURL string) (string, bool) {
	marker := "/image/upload/"
	i := strings.Index(imageURL, marker)
	if i == -1 {
		return "", false
	}
	rest := imageURL[i+len(marker):]
	// Drop the version segment when present.
	if parts := strings.SplitN(rest, "/", 2); len(parts) == 2 && strings.HasPrefix(parts[0], "v") {
		rest = parts[1]
	}
	if j := strings.LastIndex(rest, "."); j != -1 {
		rest = rest[:j]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Sanitize collapses anything outside [a-zA-Z0-9._-] to underscores so names
// are safe inside object paths.
func Sanitize(s string) string {
	return unsafePathChars.ReplaceAllString(strings.TrimSpace(s), "_")
}

// ObjectPath builds the storage path for a unit picture:
// units/{ownerID}/{propertyID}/{sanitizedUnitName}_{unixTimestamp}_{sanitizedFileName}.
func ObjectPath(ownerID, propertyID, unitName, fileName string, now time.Time) string {
	return fmt.Sprintf("units/%s/%s/%s_%d_%s", ownerID, propertyID, Sanitize(unitName), now.Unix(), Sanitize(fileName))
}
