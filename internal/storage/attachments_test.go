package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/config"
)

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "u-1/1700000000000.png", ObjectPath("u-1", "screenshot.png", now))
	assert.Equal(t, "u-1/1700000000000.pdf", ObjectPath("u-1", "report.final.pdf", now))
	assert.Equal(t, "u-1/1700000000000.bin", ObjectPath("u-1", "noextension", now))
}

func TestUploadAndRemove(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(config.StorageConfig{
		BaseURL:    server.URL,
		ServiceKey: "svc-key",
		Bucket:     "attachment",
	}, zap.NewNop())

	result, err := client.Upload(context.Background(), "u-1", "shot.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.True(t, strings.HasPrefix(gotPath, "/storage/v1/object/attachment/u-1/"))
	assert.Equal(t, "Bearer svc-key", gotAuth)
	assert.Equal(t, "image/png", gotType)
	assert.True(t, strings.HasSuffix(result.Path, ".png"))
	assert.Contains(t, result.URL, "/storage/v1/object/public/attachment/"+result.Path)

	require.NoError(t, client.Remove(context.Background(), result.Path))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestUploadPropagatesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(config.StorageConfig{BaseURL: server.URL, Bucket: "attachment"}, zap.NewNop())

	_, err := client.Upload(context.Background(), "u-1", "shot.png", "", strings.NewReader("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
