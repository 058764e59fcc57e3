package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"parlamentodb/internal"
	"parlamentodb/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testClient(t *testing.T, rt roundTripFunc) (*Client, config.Config) {
	t.Helper()
	cfg, _ := config.Load()
	cfg.BronzeDir = t.TempDir()
	cfg.FetchRetries = 3
	cfg.FetchBackoffMs = 1
	cfg.FetchRateRPS = 1000

	client := NewClient(cfg, zap.NewNop())
	client.httpClient = &http.Client{Transport: rt}
	return client, cfg
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchIniciativasWithRetry(t *testing.T) {
	attempt := 0
	client, cfg := testClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("User-Agent") == "" {
			t.Fatal("missing user agent")
		}
		attempt++
		if attempt == 1 {
			return respond(http.StatusServiceUnavailable, "busy"), nil
		}
		return respond(http.StatusOK, `[{"IniNr": "1"}]`), nil
	})

	path, err := client.FetchIniciativas(context.Background(), "L17", false)
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 {
		t.Fatalf("attempts = %d", attempt)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != `[{"IniNr": "1"}]` {
		t.Fatalf("bronze content: %s", blob)
	}

	// No leftover temp files from the atomic write.
	leftovers, _ := filepath.Glob(filepath.Join(cfg.BronzeDir, "*.tmp-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestFetchIniciativasShapeError(t *testing.T) {
	client, cfg := testClient(t, func(r *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"unexpected": "object"}`), nil
	})

	_, err := client.FetchIniciativas(context.Background(), "L17", false)
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error = %v", err)
	}
	if shape.Expected != "array" || shape.Got != "object" {
		t.Fatalf("shape = %+v", shape)
	}

	// A bad payload must never land in the bronze layer.
	if _, err := os.Stat(internal.BronzePath(cfg.BronzeDir, internal.DatasetIniciativas, "L17")); err == nil {
		t.Fatal("bronze file written despite shape error")
	}
}

func TestFetchIniciativasSkipsExisting(t *testing.T) {
	calls := 0
	client, cfg := testClient(t, func(r *http.Request) (*http.Response, error) {
		calls++
		return respond(http.StatusOK, `[]`), nil
	})

	existing := internal.BronzePath(cfg.BronzeDir, internal.DatasetIniciativas, "L17")
	if err := os.WriteFile(existing, []byte(`[{"IniNr": "old"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := client.FetchIniciativas(context.Background(), "L17", false)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, existing file should short-circuit", calls)
	}
	if path != existing {
		t.Fatalf("path = %s", path)
	}

	// force re-downloads.
	if _, err := client.FetchIniciativas(context.Background(), "L17", true); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d after force", calls)
	}
}

func TestFetchInfoBaseShape(t *testing.T) {
	client, _ := testClient(t, func(r *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `["wrong", "shape"]`), nil
	})

	_, err := client.FetchInfoBase(context.Background(), "L17", false)
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error = %v", err)
	}
	if shape.Expected != "object" || shape.Got != "array" {
		t.Fatalf("shape = %+v", shape)
	}
}

func TestFetchUnknownLegislature(t *testing.T) {
	client, _ := testClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	if _, err := client.FetchIniciativas(context.Background(), "L99", false); err == nil {
		t.Fatal("expected error")
	}
}

func TestFetchRetriesExhausted(t *testing.T) {
	attempt := 0
	client, _ := testClient(t, func(r *http.Request) (*http.Response, error) {
		attempt++
		return respond(http.StatusInternalServerError, "boom"), nil
	})

	_, err := client.FetchIniciativas(context.Background(), "L17", false)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempt != 3 {
		t.Fatalf("attempts = %d", attempt)
	}
}
