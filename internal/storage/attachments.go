// Package storage talks to the hosted object store that keeps ticket
// attachments.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/config"
)

// UploadResult carries both the public URL stored on the ticket and the
// object path needed for a compensating delete.
type UploadResult struct {
	URL  string
	Path string
}

// AttachmentStore uploads and removes ticket attachments.
type AttachmentStore interface {
	Upload(ctx context.Context, userID, fileName, contentType string, body io.Reader) (UploadResult, error)
	Remove(ctx context.Context, objectPath string) error
}

// Client implements AttachmentStore against the store's REST surface.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a storage client from config.
func NewClient(cfg config.StorageConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Upload writes the attachment under {userID}/{epochMillis}.{ext} and
// returns its public URL alongside the object path.
func (c *Client) Upload(ctx context.Context, userID, fileName, contentType string, body io.Reader) (UploadResult, error) {
	objectPath := ObjectPath(userID, fileName, time.Now())

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return UploadResult{}, fmt.Errorf("upload attachment: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.logger.Info("attachment uploaded", zap.String("path", objectPath))
	return UploadResult{URL: c.PublicURL(objectPath), Path: objectPath}, nil
}

// Remove deletes an uploaded object. Used as the compensating action when
// a ticket insert fails after its attachment upload succeeded.
func (c *Client) Remove(ctx context.Context, objectPath string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remove attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remove attachment: status %d", resp.StatusCode)
	}
	return nil
}

// PublicURL returns the public read URL for an object path.
func (c *Client) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, objectPath)
}

// ObjectPath namespaces an upload by acting user and timestamp, keeping
// the original file extension.
func ObjectPath(userID, fileName string, now time.Time) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d.%s", userID, now.UnixMilli(), ext)
}
