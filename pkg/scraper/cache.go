package scraper

import (
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang/groupcache/lru"
)

// DefaultCacheSize is how many parsed pages are kept when no size is configured.
const DefaultCacheSize = 300

// Page is a fetched timetable page: its body decoded to UTF-8 and the parsed tree.
type Page struct {
	Body []byte
	Doc  *goquery.Document
}

// PageCache keeps fetched pages keyed by their exact URL and evicts the
// least recently used one once the capacity is reached.
type PageCache struct {
	mu    sync.Mutex
	pages *lru.Cache
	size  int
}

// NewPageCache creates a cache holding at most size pages.
// A size <= 0 falls back to DefaultCacheSize.
func NewPageCache(size int) *PageCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &PageCache{
		pages: lru.New(size),
		size:  size,
	}
}

// OnEvicted registers a callback invoked with the URL of every evicted page.
func (pc *PageCache) OnEvicted(fn func(url string)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.pages.OnEvicted = func(key lru.Key, _ interface{}) {
		fn(key.(string))
	}
}

// Get returns the cached page for url and marks it as recently used.
func (pc *PageCache) Get(url string) (*Page, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	v, ok := pc.pages.Get(url)
	if !ok {
		return nil, false
	}
	return v.(*Page), true
}

// Add stores page under url, evicting the oldest entry if needed.
func (pc *PageCache) Add(url string, page *Page) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.pages.Add(url, page)
}

// Len reports the number of cached pages.
func (pc *PageCache) Len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	return pc.pages.Len()
}

// Size is the configured capacity.
func (pc *PageCache) Size() int { return pc.size }
