package scraper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type recordingObserver struct {
	hits, misses, fetches, failures int
}

func (o *recordingObserver) CacheHit()  { o.hits++ }
func (o *recordingObserver) CacheMiss() { o.misses++ }
func (o *recordingObserver) FetchDone(_ time.Duration, err error) {
	o.fetches++
	if err != nil {
		o.failures++
	}
}

func TestDocumentCacheHit(t *testing.T) {
	server, hits := newFixtureServer(t, fixturePages())
	obs := &recordingObserver{}
	client := NewClient(server.URL+"/", NewPageCache(10), WithObserver(obs))

	first, err := client.Document(server.URL + "/M1.html")
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	second, err := client.Document(server.URL + "/M1.html")
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if first != second {
		t.Errorf("expected the cached document to be returned on a hit")
	}
	if got := hits.count("/M1.html"); got != 1 {
		t.Errorf("expected 1 network call, got %d", got)
	}
	if obs.hits != 1 || obs.misses != 1 || obs.fetches != 1 {
		t.Errorf("unexpected observer counts: %+v", obs)
	}
}

func TestDocumentCacheEviction(t *testing.T) {
	server, hits := newFixtureServer(t, fixturePages())
	client := NewClient(server.URL+"/", NewPageCache(2))

	for _, p := range []string{"/M1.html", "/M2.html", "/I1.html"} {
		if _, err := client.Document(server.URL + p); err != nil {
			t.Fatalf("fetch %s failed: %v", p, err)
		}
	}

	if got := client.Cache().Len(); got != 2 {
		t.Fatalf("expected cache to hold 2 pages, got %d", got)
	}

	// M1 was least recently used and must have been evicted
	if _, err := client.Document(server.URL + "/M1.html"); err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if got := hits.count("/M1.html"); got != 2 {
		t.Errorf("expected evicted page to be refetched, got %d calls", got)
	}

	// I1 is still cached
	if _, err := client.Document(server.URL + "/I1.html"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got := hits.count("/I1.html"); got != 1 {
		t.Errorf("expected I1 to stay cached, got %d calls", got)
	}
}

func TestDocumentRecencyOnGet(t *testing.T) {
	server, hits := newFixtureServer(t, fixturePages())
	client := NewClient(server.URL+"/", NewPageCache(2))

	fetch := func(p string) {
		t.Helper()
		if _, err := client.Document(server.URL + p); err != nil {
			t.Fatalf("fetch %s failed: %v", p, err)
		}
	}

	fetch("/M1.html")
	fetch("/M2.html")
	fetch("/M1.html") // touch M1 so M2 becomes the oldest
	fetch("/I1.html")
	fetch("/M1.html")

	if got := hits.count("/M1.html"); got != 1 {
		t.Errorf("expected M1 to survive eviction, got %d calls", got)
	}
	fetch("/M2.html")
	if got := hits.count("/M2.html"); got != 2 {
		t.Errorf("expected M2 to be evicted, got %d calls", got)
	}
}

func TestDocumentErrorsAreNotCached(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	obs := &recordingObserver{}
	client := NewClient(server.URL+"/", NewPageCache(10), WithObserver(obs))

	for i := 0; i < 2; i++ {
		_, err := client.Document(server.URL + "/broken.html")
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fetchErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected status 500 in error, got %d", fetchErr.StatusCode)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected failed fetch to be retried on the next call, got %d calls", got)
	}
	if client.Cache().Len() != 0 {
		t.Errorf("expected nothing cached after failures")
	}
	if obs.failures != 2 {
		t.Errorf("expected 2 reported failures, got %d", obs.failures)
	}
}

func TestDocumentDecodesDeclaredCharset(t *testing.T) {
	// 0xFE is ţ in ISO-8859-2
	page := []byte("<html><body><h1>Grupa 1</h1><p>Mar\xfei</p></body></html>")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-2")
		w.Write(page)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", nil)
	doc, err := client.Document(server.URL + "/")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got := doc.Find("p").Text(); got != "Marţi" {
		t.Errorf("expected decoded text Marţi, got %q", got)
	}
}

func TestNewPageCacheDefaultSize(t *testing.T) {
	if got := NewPageCache(0).Size(); got != DefaultCacheSize {
		t.Errorf("expected default size %d, got %d", DefaultCacheSize, got)
	}
}
