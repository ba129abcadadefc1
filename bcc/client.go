/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package bcc acquires tournament snapshots from the Boylston Chess Club
// APIs and renders engine output for publication. It contains no pairing
// logic; the swiss package consumes the snapshots built here.
package bcc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/uschess"
)

const (
	apiBase = "https://beta.boylstonchess.org/api"
	webBase = "https://boylstonchess.org"
)

// Client fetches club data over cached HTTP. Event lists and entries move
// daily; standings change between rounds, so those requests use the
// shorter TTL.
type Client struct {
	httpClient1day *http.Client
	httpClient1hr  *http.Client
	uscf           *uschess.Client
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient1day: internal.NewCachedHttpClient(ctx, 24*time.Hour),
		uscf:           uschess.NewClient(ctx),
	}
	if ret.httpClient1day != http.DefaultClient {
		ret.httpClient1hr = internal.NewCachedHttpClient(ctx, time.Hour)
	} else {
		ret.httpClient1hr = http.DefaultClient
	}

	return ret
}

func (c *Client) getJSON(url string, out any) error {
	return getJSONWith(c.httpClient1hr, url, out)
}

func (c *Client) getJSONDaily(url string, out any) error {
	return getJSONWith(c.httpClient1day, url, out)
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func (c *Client) fetchDoc(url string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := c.httpClient1hr.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
