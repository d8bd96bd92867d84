package scraper

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// DefaultBaseURL is the directory holding the faculty's tabular timetables.
// The index page is the directory itself; specialization pages are relative to it.
const DefaultBaseURL = "https://www.cs.ubbcluj.ro/files/orar/2025-1/tabelar/"

const defaultUserAgent = "orarctl/1.0"

// Observer receives page fetcher events. pkg/metrics provides one.
type Observer interface {
	CacheHit()
	CacheMiss()
	FetchDone(elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) CacheHit()                       {}
func (nopObserver) CacheMiss()                      {}
func (nopObserver) FetchDone(time.Duration, error) {}

// Client fetches timetable pages and extracts catalog and schedule data from them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	cache      *PageCache
	layout     Layout
	log        *zap.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (which has no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header of outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithObserver reports cache and fetch events to o.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLayout overrides the page layout assumptions.
func WithLayout(l Layout) Option {
	return func(c *Client) { c.layout = l }
}

// NewClient creates a client rooted at baseURL that stores parsed pages in cache.
func NewClient(baseURL string, cache *PageCache, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache == nil {
		cache = NewPageCache(DefaultCacheSize)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
		cache:      cache,
		layout:     DefaultLayout,
		log:        zap.NewNop(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cache.OnEvicted(func(url string) {
		c.log.Debug("evicted page from cache", zap.String("url", url))
	})

	return c
}

// BaseURL is the index page URL and the prefix of every specialization link.
func (c *Client) BaseURL() string { return c.baseURL }

// Cache exposes the page cache, mostly for health reporting.
func (c *Client) Cache() *PageCache { return c.cache }

// Get issues a GET for url and returns the response if the status is 200.
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// Document returns the parsed page at url, from the cache when possible.
// Concurrent misses for the same url may each hit the network.
func (c *Client) Document(url string) (*goquery.Document, error) {
	p, err := c.page(url)
	if err != nil {
		return nil, err
	}
	return p.Doc, nil
}

func (c *Client) page(url string) (*Page, error) {
	if p, ok := c.cache.Get(url); ok {
		c.observer.CacheHit()
		return p, nil
	}
	c.observer.CacheMiss()

	start := time.Now()
	p, err := c.fetch(url)
	elapsed := time.Since(start)
	c.observer.FetchDone(elapsed, err)
	if err != nil {
		c.log.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	c.log.Debug("fetched page", zap.String("url", url), zap.Duration("elapsed", elapsed))
	c.cache.Add(url, p)
	return p, nil
}

func (c *Client) fetch(url string) (*Page, error) {
	resp, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The timetable pages are not always served as UTF-8.
	decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return &Page{Body: body, Doc: doc}, nil
}

// pageURL joins href to the base URL without validation.
func (c *Client) pageURL(href string) string {
	return c.baseURL + href
}
