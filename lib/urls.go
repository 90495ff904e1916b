// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/ergochat/ircmark/markup"
)

// DefaultURLLimit is how many URLs a URLGrabber keeps.
const DefaultURLLimit = 100

// URLGrabber collects the URLs of displayed lines, oldest first. A URL seen
// again moves to the end; past the limit the oldest ones are dropped.
// It is safe for concurrent use.
type URLGrabber struct {
	sync.Mutex
	limit int
	urls  []string
}

// NewURLGrabber returns a grabber keeping at most limit URLs.
func NewURLGrabber(limit int) *URLGrabber {
	if limit < 1 {
		limit = DefaultURLLimit
	}
	return &URLGrabber{limit: limit}
}

// Grab records the URLs found in raw, a protocol line or message body.
func (g *URLGrabber) Grab(raw string) {
	found := markup.URLs(raw)
	if len(found) == 0 {
		return
	}

	g.Lock()
	defer g.Unlock()
	for _, url := range found {
		if i := slices.Index(g.urls, url); i != -1 {
			g.urls = slices.Delete(g.urls, i, i+1)
		}
		g.urls = append(g.urls, url)
	}
	if excess := len(g.urls) - g.limit; excess > 0 {
		g.urls = slices.Delete(g.urls, 0, excess)
	}
}

// List returns the collected URLs, oldest first.
func (g *URLGrabber) List() []string {
	g.Lock()
	defer g.Unlock()
	return slices.Clone(g.urls)
}

// Get returns the URL numbered n by List, counting from 1.
func (g *URLGrabber) Get(n int) (string, bool) {
	g.Lock()
	defer g.Unlock()
	if n < 1 || len(g.urls) < n {
		return "", false
	}
	return g.urls[n-1], true
}

// Clear forgets every URL.
func (g *URLGrabber) Clear() {
	g.Lock()
	defer g.Unlock()
	g.urls = nil
}

// Save writes the URLs to filename, one per line.
func (g *URLGrabber) Save(filename string) error {
	urls := g.List()
	var buf strings.Builder
	for _, url := range urls {
		buf.WriteString(url)
		buf.WriteByte('\n')
	}
	return os.WriteFile(filename, []byte(buf.String()), 0644)
}
