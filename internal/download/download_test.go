package download

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchWritesFile(t *testing.T) {
	payload := strings.Repeat("audio-bytes ", 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		io.WriteString(w, payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "episode.mp3")
	if err := Fetch(context.Background(), server.Client(), server.URL+"/episode.mp3", dest, nil); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("downloaded %d bytes, want %d", len(data), len(payload))
	}
	if _, err := os.Stat(dest + ".partial"); !os.IsNotExist(err) {
		t.Fatal("partial file left behind")
	}
}

func TestFetchReportsProgress(t *testing.T) {
	payload := []byte("0123456789")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	var observed bytes.Buffer
	var reportedTotal int64
	dest := filepath.Join(t.TempDir(), "out.bin")
	err := Fetch(context.Background(), server.Client(), server.URL, dest, func(total int64) io.Writer {
		reportedTotal = total
		return &observed
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if reportedTotal != int64(len(payload)) {
		t.Fatalf("reported total = %d, want %d", reportedTotal, len(payload))
	}
	if observed.Len() != len(payload) {
		t.Fatalf("progress writer saw %d bytes, want %d", observed.Len(), len(payload))
	}
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")
	if err := Fetch(context.Background(), server.Client(), server.URL, dest, nil); err == nil {
		t.Fatal("expected error for 410 response")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("destination should not exist after failure")
	}
}

func TestFetchEmptyURL(t *testing.T) {
	if err := Fetch(context.Background(), nil, "  ", "x", nil); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
