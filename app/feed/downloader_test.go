package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type memoryImageStore struct {
	files map[string][]byte
}

func newMemoryImageStore() *memoryImageStore {
	return &memoryImageStore{files: make(map[string][]byte)}
}

func (s *memoryImageStore) CreateImage(fileName string, data []byte) error {
	s.files[fileName] = data
	return nil
}

func TestImageDownloaderNamesAndFailureIsolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write([]byte("png-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	downloader := NewImageDownloader(server.Client(), "Test Agent")
	store := newMemoryImageStore()

	urls := []string{server.URL + "/missing.jpg", server.URL + "/ok.png"}
	images := downloader.Run(context.Background(), store, urls, "My Post", 5*time.Second)

	if len(images) != 1 {
		t.Fatalf("Expected 1 downloaded image, got %d: %v", len(images), images)
	}

	// Sequence index comes from discovery order, so the success keeps slot 2.
	fileName, ok := images[server.URL+"/ok.png"]
	if !ok {
		t.Fatal("Expected mapping for the succeeded URL")
	}
	if fileName != "My Post-2.png" {
		t.Errorf("Expected 'My Post-2.png', got '%s'", fileName)
	}

	if string(store.files[fileName]) != "png-bytes" {
		t.Errorf("Stored payload mismatch: %q", store.files[fileName])
	}

	if _, ok := images[server.URL+"/missing.jpg"]; ok {
		t.Error("Failed URL must not appear in the result map")
	}
}

func TestImageDownloaderUniqueNamesWithinRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	downloader := NewImageDownloader(server.Client(), "Test Agent")
	store := newMemoryImageStore()

	urls := []string{server.URL + "/a.png", server.URL + "/b.png", server.URL + "/c.png"}
	images := downloader.Run(context.Background(), store, urls, "Post", 5*time.Second)

	if len(images) != 3 {
		t.Fatalf("Expected 3 downloads, got %d", len(images))
	}

	seen := make(map[string]bool)
	for _, name := range images {
		if seen[name] {
			t.Errorf("Duplicate local name within one run: %s", name)
		}
		seen[name] = true
	}
}

func TestExtensionFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://example.com/pic.png", "png"},
		{"https://example.com/pic.JPG", "jpg"},
		{"https://example.com/pic.jpeg?w=100", "jpeg"},
		{"https://example.com/pic.webp#frag", "webp"},
		{"https://example.com/pic", "jpg"},
		{"https://example.com/dir.v2/pic", "jpg"},
		{"https://example.com/pic.", "jpg"},
		{"https://example.com/signed.php%3Ftoken%3Dabcdef0123456789", "jpg"},
	}

	for _, tt := range tests {
		if got := extensionFromURL(tt.url); got != tt.expected {
			t.Errorf("extensionFromURL(%s) = %s, expected %s", tt.url, got, tt.expected)
		}
	}
}
