package dataset

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

// IDatasetSource loads the experiment table from wherever it lives. The
// service reads a committed CSV by default and can follow a published
// dataset URL instead.
type IDatasetSource interface {
	Load() (*Dataset, error)
	Describe() string
}

// FileSource reads the dataset from a local CSV file.
type FileSource struct {
	path  string
	space model.DesignSpace
}

func NewFileSource(path string, space model.DesignSpace) *FileSource {
	return &FileSource{
		path:  path,
		space: space,
	}
}

func (s *FileSource) Load() (*Dataset, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer file.Close()

	return ParseCSV(file, s.space)
}

func (s *FileSource) Describe() string {
	return fmt.Sprintf("file %s", s.path)
}

// HTTPSource fetches the dataset from a raw CSV URL.
type HTTPSource struct {
	url    string
	space  model.DesignSpace
	client *http.Client
}

func NewHTTPSource(url string, space model.DesignSpace) *HTTPSource {
	return &HTTPSource{
		url:   url,
		space: space,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *HTTPSource) Load() (*Dataset, error) {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status)
	}

	return ParseCSV(resp.Body, s.space)
}

func (s *HTTPSource) Describe() string {
	return fmt.Sprintf("url %s", s.url)
}
