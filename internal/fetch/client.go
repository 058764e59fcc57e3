// Package fetch downloads the raw parliament dumps into the bronze layer.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"parlamentodb/internal"
	"parlamentodb/internal/config"
)

// ShapeError reports a download whose payload decoded fine but had the wrong
// top-level shape for its dataset. These are never retried: the source is
// serving something other than the expected dump.
type ShapeError struct {
	Dataset  string
	Expected string
	Got      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s payload: expected %s, got %s", e.Dataset, e.Expected, e.Got)
}

// infoBaseKeys are the sections a metadata dump normally has. A missing key
// is only logged: older legislatures drop sections without warning.
var infoBaseKeys = []string{"DetalheLegislatura", "Deputados", "GruposParlamentares"}

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
	log        *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FetchRateRPS),
		log:        log,
	}
}

// FetchIniciativas downloads one legislature's initiatives dump. An existing
// bronze file is reused unless force is set.
func (c *Client) FetchIniciativas(ctx context.Context, legislature string, force bool) (string, error) {
	leg, ok := config.Legislatures[legislature]
	if !ok {
		return "", fmt.Errorf("unknown legislature: %s", legislature)
	}

	outputPath := internal.BronzePath(c.cfg.BronzeDir, internal.DatasetIniciativas, legislature)
	if !force && fileExists(outputPath) {
		c.log.Info("bronze file exists, skipping", zap.String("path", outputPath))
		return outputPath, nil
	}

	body, err := c.download(ctx, leg.URL)
	if err != nil {
		return "", fmt.Errorf("fetch iniciativas %s: %w", legislature, err)
	}

	count, err := validateArray(internal.DatasetIniciativas, body)
	if err != nil {
		return "", err
	}

	if err := writeAtomic(outputPath, body); err != nil {
		return "", err
	}
	c.log.Info("fetched iniciativas",
		zap.String("legislature", legislature),
		zap.Int("records", count),
		zap.Int("bytes", len(body)))
	return outputPath, nil
}

// FetchInfoBase downloads one legislature's metadata dump. Returns an empty
// path with no error when no metadata URL is configured for the term.
func (c *Client) FetchInfoBase(ctx context.Context, legislature string, force bool) (string, error) {
	leg, ok := config.Legislatures[legislature]
	if !ok {
		return "", fmt.Errorf("unknown legislature: %s", legislature)
	}
	if leg.InfoBaseURL == "" {
		c.log.Warn("no info_base url configured", zap.String("legislature", legislature))
		return "", nil
	}

	outputPath := internal.BronzePath(c.cfg.BronzeDir, internal.DatasetInfoBase, legislature)
	if !force && fileExists(outputPath) {
		c.log.Info("bronze file exists, skipping", zap.String("path", outputPath))
		return outputPath, nil
	}

	body, err := c.download(ctx, leg.InfoBaseURL)
	if err != nil {
		return "", fmt.Errorf("fetch info_base %s: %w", legislature, err)
	}

	doc, err := validateObject(internal.DatasetInfoBase, body)
	if err != nil {
		return "", err
	}
	for _, key := range infoBaseKeys {
		if _, ok := doc[key]; !ok {
			c.log.Warn("info_base missing section",
				zap.String("legislature", legislature),
				zap.String("key", key))
		}
	}

	if err := writeAtomic(outputPath, body); err != nil {
		return "", err
	}
	c.log.Info("fetched info_base",
		zap.String("legislature", legislature),
		zap.Int("bytes", len(body)))
	return outputPath, nil
}

// FetchAtividades downloads one legislature's activities dump, when the term
// publishes one. Returns an empty path with no error otherwise.
func (c *Client) FetchAtividades(ctx context.Context, legislature string, force bool) (string, error) {
	leg, ok := config.Legislatures[legislature]
	if !ok {
		return "", fmt.Errorf("unknown legislature: %s", legislature)
	}
	if leg.AtividadesURL == "" {
		c.log.Warn("no atividades url configured", zap.String("legislature", legislature))
		return "", nil
	}

	outputPath := internal.BronzePath(c.cfg.BronzeDir, internal.DatasetAtividades, legislature)
	if !force && fileExists(outputPath) {
		c.log.Info("bronze file exists, skipping", zap.String("path", outputPath))
		return outputPath, nil
	}

	body, err := c.download(ctx, leg.AtividadesURL)
	if err != nil {
		return "", fmt.Errorf("fetch atividades %s: %w", legislature, err)
	}

	if _, err := validateObject(internal.DatasetAtividades, body); err != nil {
		return "", err
	}

	if err := writeAtomic(outputPath, body); err != nil {
		return "", err
	}
	c.log.Info("fetched atividades",
		zap.String("legislature", legislature),
		zap.Int("bytes", len(body)))
	return outputPath, nil
}

// FetchAll downloads every dataset for the given legislatures. One term
// failing never stops the others; failures are collected and joined.
func (c *Client) FetchAll(ctx context.Context, legislatures []string, force bool) (map[string][]string, error) {
	results := make(map[string][]string)
	var errs []error

	record := func(leg, dataset, path string, err error) {
		if err != nil {
			c.log.Error("fetch failed",
				zap.String("legislature", leg),
				zap.String("dataset", dataset),
				zap.Error(err))
			errs = append(errs, err)
			return
		}
		if path != "" {
			results[leg] = append(results[leg], dataset)
		}
	}

	for _, leg := range legislatures {
		path, err := c.FetchIniciativas(ctx, leg, force)
		record(leg, internal.DatasetIniciativas, path, err)

		path, err = c.FetchInfoBase(ctx, leg, force)
		record(leg, internal.DatasetInfoBase, path, err)

		path, err = c.FetchAtividades(ctx, leg, force)
		record(leg, internal.DatasetAtividades, path, err)
	}

	return results, errors.Join(errs...)
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.FetchRetries; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.cfg.FetchUserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.backoff(attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			c.backoff(attempt)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < c.cfg.FetchRetries {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				c.backoff(attempt)
				continue
			}
			return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("download failed")
	}
	return nil, lastErr
}

func (c *Client) backoff(attempt int) {
	base := time.Duration(c.cfg.FetchBackoffMs) * time.Millisecond
	sleep := base*(1<<(attempt-1)) + time.Duration(rand.Intn(250))*time.Millisecond
	time.Sleep(sleep)
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func validateArray(dataset string, body []byte) (int, error) {
	var data []json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, &ShapeError{Dataset: dataset, Expected: "array", Got: describeJSON(body)}
	}
	return len(data), nil
}

func validateObject(dataset string, body []byte) (map[string]json.RawMessage, error) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &ShapeError{Dataset: dataset, Expected: "object", Got: describeJSON(body)}
	}
	return data, nil
}

func describeJSON(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "invalid json"
	}
	switch v.(type) {
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return "null"
	}
}

// writeAtomic stores the payload via temp file + rename so a failed download
// never clobbers a good bronze file.
func writeAtomic(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create bronze dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
