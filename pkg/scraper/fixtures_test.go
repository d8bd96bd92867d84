package scraper

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const indexPage = `<html><body>
<table>
	<tr><th>Specializare</th><th>Anul 1</th><th>Anul 2</th></tr>
	<tr><td> Math </td><td><a href="M1.html">Year1</a></td><td><a href="M2.html">Year2</a></td></tr>
	<tr><td>Informatica</td><td><a href="I1.html"> Anul 1 </a></td></tr>
	<tr><td>Fizica</td><td>-</td></tr>
</table>
</body></html>`

const timetableHeader = `<tr><th>Ziua</th><th>Orele</th><th>Frecventa</th><th>Sala</th><th>Formatia</th><th>Tipul</th><th>Disciplina</th><th>Cadrul didactic</th></tr>`

const m1Page = `<html><body>
<h1>Orar Matematica anul 1</h1>
<h1>Grupa 111</h1>
<table>` + timetableHeader + `
	<tr><td>Luni</td><td>8-10</td><td></td><td>2/I</td><td>111</td><td>Curs</td><td>Algebra</td><td>Prof. Pop Ion</td></tr>
	<tr><td> Marti </td><td>10-12</td><td>sapt. 1</td><td>C510</td><td>111/1</td><td>Laborator</td><td>Programare</td><td>Lect. Ana Maria</td></tr>
</table>
<h1>Grupa 112</h1>
<table>` + timetableHeader + `
	<tr><td>Joi</td><td>14-16</td><td>sapt. 2</td><td>L001</td><td>112</td><td>Seminar</td><td>Geometrie</td><td>Asist. Dan</td></tr>
</table>
</body></html>`

const m2Page = `<html><body>
<h1>Grupa 211</h1>
<table>` + timetableHeader + `
	<tr><td>Vineri</td><td>12-14</td><td></td><td>A2</td><td>211</td><td>Curs</td><td>Analiza</td><td>Prof. Vlad</td></tr>
</table>
</body></html>`

const i1Page = `<html><body>
<h1>Grupa 911</h1>
<table>` + timetableHeader + `
</table>
</body></html>`

// fixturePages serves a small but complete copy of the timetable site.
func fixturePages() map[string]string {
	return map[string]string{
		"/":        indexPage,
		"/M1.html": m1Page,
		"/M2.html": m2Page,
		"/I1.html": i1Page,
	}
}

type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (h *hitCounter) count(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[path]
}

func (h *hitCounter) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, v := range h.hits {
		n += v
	}
	return n
}

func newFixtureServer(t *testing.T, pages map[string]string) (*httptest.Server, *hitCounter) {
	t.Helper()

	hits := &hitCounter{hits: make(map[string]int)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.mu.Lock()
		hits.hits[r.URL.Path]++
		hits.mu.Unlock()

		page, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	return server, hits
}

func newFixtureClient(t *testing.T, pages map[string]string) (*Client, *hitCounter) {
	t.Helper()

	server, hits := newFixtureServer(t, pages)
	return NewClient(server.URL+"/", NewPageCache(DefaultCacheSize)), hits
}
