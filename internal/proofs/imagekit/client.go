// Package imagekit brokers payment-proof images to the external ImageKit
// object store: it mints short-lived signed upload credentials and performs
// server-side uploads on behalf of the public form.
package imagekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"crease/internal/platform/config"
	dErrors "crease/pkg/domain-errors"
)

// Client talks to the ImageKit upload API.
type Client struct {
	endpoint   string
	folder     string
	publicKey  string
	privateKey string
	ttl        time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithClock pins the credential clock (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates an ImageKit client from configuration.
// The HTTP client carries no timeout by default: uploads are network-bound and
// bounded only by the caller's context.
func New(cfg config.ImageKit, opts ...Option) *Client {
	c := &Client{
		endpoint:   cfg.UploadEndpoint,
		folder:     cfg.Folder,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		ttl:        cfg.CredentialTTL,
		httpClient: &http.Client{Timeout: cfg.UploadTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// uploadResponse is the subset of the ImageKit upload response we consume.
type uploadResponse struct {
	URL string `json:"url"`
}

// errorResponse is the error body returned by the upload API.
type errorResponse struct {
	Message string `json:"message"`
}

// Upload sends the image bytes to the object store authenticated by a freshly
// issued credential and returns the public URL. There is no automatic retry:
// a failed upload must be retried by explicit user action. A failed attempt
// may leave an orphaned partial upload behind; nothing here cleans those up.
func (c *Client) Upload(ctx context.Context, fileBytes []byte, fileName string) (string, error) {
	cred, err := c.IssueCredential()
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, "build upload form")
	}
	if _, err := part.Write(fileBytes); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, "build upload form")
	}

	fields := map[string]string{
		"fileName":          fileName,
		"folder":            c.folder,
		"publicKey":         c.publicKey,
		"token":             cred.Token,
		"expire":            strconv.FormatInt(cred.Expire, 10),
		"signature":         cred.Signature,
		"useUniqueFileName": "true",
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeUpload, "build upload form")
		}
	}
	if err := form.Close(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, "build upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, "build upload request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, "upload payment proof")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", dErrors.New(dErrors.CodeUpload, uploadErrorMessage(resp))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, "decode upload response")
	}
	if result.URL == "" {
		return "", dErrors.New(dErrors.CodeUpload, "upload response missing url")
	}
	return result.URL, nil
}

// GenerateFileName builds the remote object name for a proof image.
func (c *Client) GenerateFileName() string {
	return fmt.Sprintf("payment_%d", c.now().UnixMilli())
}

func uploadErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var remote errorResponse
	if err := json.Unmarshal(body, &remote); err == nil && remote.Message != "" {
		return fmt.Sprintf("upload rejected (%d): %s", resp.StatusCode, remote.Message)
	}
	return fmt.Sprintf("upload rejected (%d)", resp.StatusCode)
}
