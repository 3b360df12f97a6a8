package dataset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	source := NewFileSource(path, model.DefaultDesignSpace())

	ds, err := source.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
	assert.Contains(t, source.Describe(), path)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.csv"), model.DefaultDesignSpace())

	_, err := source.Load()

	assert.Error(t, err)
}

func TestHTTPSourceLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, model.DefaultDesignSpace())

	ds, err := source.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
	assert.Contains(t, source.Describe(), server.URL)
}

func TestHTTPSourceBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, model.DefaultDesignSpace())

	_, err := source.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestHTTPSourceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	source := NewHTTPSource(server.URL, model.DefaultDesignSpace())

	_, err := source.Load()

	assert.Error(t, err)
}
