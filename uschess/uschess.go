/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package uschess looks up current USCF ratings via the ratings API
// (https://ratings-api.uschess.org). The pairing engine seeds players by
// rating; this fills in entrants the club has no published rating for.
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

type MemID int

// Player holds the current rating profile of a USCF member.
type Player struct {
	MemberID    MemID
	Name        string
	RegRating   int
	QuickRating int
	BlitzRating int
}

// apiMemberResponse represents the JSON response from the member API endpoint
type apiMemberResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Ratings   []struct {
		Rating       int    `json:"rating"`
		RatingSystem string `json:"ratingSystem"`
	} `json:"ratings"`
}

type Client struct {
	httpClient *http.Client
}

// NewClient returns a client backed by the shared http cache. Ratings move
// slowly; a day of staleness is fine for seeding purposes.
func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient: internal.NewCachedHttpClient(ctx, 24*time.Hour),
	}
}

// FetchPlayer retrieves the rating profile for the given USCF member ID.
func (c *Client) FetchPlayer(ctx context.Context, memberID MemID) (*Player, error) {
	endpoint := fmt.Sprintf("https://ratings-api.uschess.org/api/v1/members/%v",
		memberID)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating profile request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing profile HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected profile status %d: %s",
			resp.StatusCode, string(body))
	}

	return parsePlayer(memberID, resp.Body)
}

// parsePlayer decodes a member profile response into a Player.
func parsePlayer(memberID MemID, body io.Reader) (*Player, error) {
	var memberData apiMemberResponse
	if err := json.NewDecoder(body).Decode(&memberData); err != nil {
		return nil, fmt.Errorf("decoding profile JSON: %w", err)
	}

	player := &Player{
		MemberID: memberID,
		Name: internal.NormalizeName(memberData.FirstName + " " +
			memberData.LastName),
	}
	for _, rating := range memberData.Ratings {
		if rating.Rating == 0 {
			continue
		}
		switch rating.RatingSystem {
		case "R":
			player.RegRating = rating.Rating
		case "Q":
			player.QuickRating = rating.Rating
		case "B":
			player.BlitzRating = rating.Rating
		}
	}

	return player, nil
}
