package imagekit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "crease/pkg/domain-errors"
)

func TestUploadSendsSignedMultipartForm(t *testing.T) {
	var gotFileName, gotFolder, gotToken, gotSignature, gotPublicKey string
	var gotFile []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFileName = r.FormValue("fileName")
		gotFolder = r.FormValue("folder")
		gotToken = r.FormValue("token")
		gotSignature = r.FormValue("signature")
		gotPublicKey = r.FormValue("publicKey")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotFile = buf[:n]

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://ik.example.com/tournament-payments/payment_1.png"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.UploadEndpoint = server.URL
	client := New(cfg)

	url, err := client.Upload(context.Background(), []byte("png-bytes"), "payment_1")
	require.NoError(t, err)

	assert.Equal(t, "https://ik.example.com/tournament-payments/payment_1.png", url)
	assert.Equal(t, "payment_1", gotFileName)
	assert.Equal(t, "/tournament-payments", gotFolder)
	assert.Equal(t, "public_test", gotPublicKey)
	assert.NotEmpty(t, gotToken)
	assert.NotEmpty(t, gotSignature)
	assert.Equal(t, []byte("png-bytes"), gotFile)
}

func TestUploadRejectedByRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"File size limit exceeded"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.UploadEndpoint = server.URL
	client := New(cfg)

	_, err := client.Upload(context.Background(), []byte("big"), "payment_1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpload))
	assert.Contains(t, err.Error(), "File size limit exceeded")
}

func TestUploadNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	cfg := testConfig()
	cfg.UploadEndpoint = server.URL
	client := New(cfg)

	_, err := client.Upload(context.Background(), []byte("png"), "payment_1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpload))
}

func TestUploadHonorsContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	cfg := testConfig()
	cfg.UploadEndpoint = server.URL
	client := New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Upload(ctx, []byte("png"), "payment_"+strconv.Itoa(1))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpload))
}

func TestUploadResponseMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.UploadEndpoint = server.URL
	client := New(cfg)

	_, err := client.Upload(context.Background(), []byte("png"), "payment_1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpload))
}
