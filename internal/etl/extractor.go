package etl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BartekS5/uni-etl/pkg/models"
	"go.uber.org/zap"
)

// HTTPExtractor fetches the university list with a single GET.
type HTTPExtractor struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

func NewHTTPExtractor(url string, timeout time.Duration, log *zap.Logger) *HTTPExtractor {
	return &HTTPExtractor{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Log:    log,
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context) (models.RawDataset, error) {
	data, err := e.fetch(ctx)
	if err != nil {
		e.Log.Error("Error extracting data: " + err.Error())
		return nil, err
	}
	e.Log.Info("Data extracted successfully", zap.Int("rows", len(data)))
	return data, nil
}

func (e *HTTPExtractor) fetch(ctx context.Context) (models.RawDataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var data models.RawDataset
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if data == nil {
		// A literal null body.
		return nil, fmt.Errorf("parse json: %w", ErrNoData)
	}
	return data, nil
}
