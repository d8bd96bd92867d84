package scraper

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ListCatalog reads the index page and returns every major/year entry along
// with the groups found on its specialization page.
func (c *Client) ListCatalog() ([]CatalogEntry, error) {
	index, err := c.page(c.baseURL)
	if err != nil {
		return nil, err
	}

	links := scanCatalog(bytes.NewReader(index.Body))

	entries := make([]CatalogEntry, 0, len(links))
	for _, l := range links {
		link := c.pageURL(l.href)
		groups, err := c.ListGroups(link)
		if err != nil {
			return nil, err
		}
		entries = append(entries, CatalogEntry{
			Major:  l.major,
			Year:   l.year,
			Groups: groups,
			Link:   link,
		})
	}

	return entries, nil
}

type catalogLink struct {
	major, year, href string
}

// catalogRow collects one <tr> of the index table.
type catalogRow struct {
	hasCell     bool
	inFirstCell bool
	major       strings.Builder
	links       []catalogLink
	inAnchor    bool
	href        string
	text        strings.Builder
}

// scanCatalog walks the raw token stream of the index page. The HTML5 tree
// builder moves anchors that sit directly inside a <tr> out of the table, so
// rows are tracked on tokens instead of on the parsed document. Rows without
// a <td> are skipped; every anchor in a row becomes one link of the row's major.
func scanCatalog(r io.Reader) []catalogLink {
	z := html.NewTokenizer(r)
	var links []catalogLink
	var row *catalogRow

	flush := func() {
		if row == nil {
			return
		}
		if row.hasCell {
			major := strings.TrimSpace(row.major.String())
			for _, l := range row.links {
				l.major = major
				links = append(links, l)
			}
		}
		row = nil
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a read error; either way the stream is done
			flush()
			return links

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "tr":
				flush()
				row = &catalogRow{}
			case "td":
				if row != nil && !row.hasCell {
					row.hasCell = true
					row.inFirstCell = tt == html.StartTagToken
				}
			case "a":
				if row != nil && tt == html.StartTagToken {
					row.inAnchor = true
					row.href = ""
					row.text.Reset()
					for hasAttr {
						var key, val []byte
						key, val, hasAttr = z.TagAttr()
						if string(key) == "href" {
							row.href = string(val)
						}
					}
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "td":
				if row != nil {
					row.inFirstCell = false
				}
			case "a":
				if row != nil && row.inAnchor {
					row.inAnchor = false
					row.links = append(row.links, catalogLink{
						year: strings.TrimSpace(row.text.String()),
						href: row.href,
					})
				}
			case "tr", "table":
				flush()
			}

		case html.TextToken:
			if row == nil {
				continue
			}
			text := z.Text()
			if row.inFirstCell {
				row.major.Write(text)
			}
			if row.inAnchor {
				row.text.Write(text)
			}
		}
	}
}

// ListGroups returns the group headings of a specialization page in document order.
func (c *Client) ListGroups(link string) ([]string, error) {
	doc, err := c.Document(link)
	if err != nil {
		return nil, err
	}

	groups := []string{}
	doc.Find(c.layout.GroupHeading).Each(func(i int, h *goquery.Selection) {
		name := strings.TrimSpace(h.Text())
		if strings.Contains(name, c.layout.GroupMarker) {
			groups = append(groups, name)
		}
	})

	return groups, nil
}
