package source_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/moved", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/rates.xml", http.StatusFound)
	})
	mux.HandleFunc("/rates.xml", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/xml", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, bsiDocument)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d := source.NewDownloader(srv.Client(), srv.URL+"/old", source.DefaultMaxRedirects, quietLogger)
	body, err := d.Download(context.Background())
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, bsiDocument, string(data))
}

func TestDownloader_TooManyRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	d := source.NewDownloader(srv.Client(), srv.URL+"/loop", 2, quietLogger)
	_, err := d.Download(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "too many redirects")
}

func TestDownloader_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := source.NewDownloader(srv.Client(), srv.URL, source.DefaultMaxRedirects, quietLogger)
	_, err := d.Download(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestDownloader_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := source.NewDownloader(nil, url, source.DefaultMaxRedirects, quietLogger)
	_, err := d.Download(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtecbs-l.xml")
	require.NoError(t, os.WriteFile(path, []byte(bsiDocument), 0o600))

	f, err := source.OpenFile(path)
	require.NoError(t, err)
	f.Close()

	_, err = source.OpenFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}
