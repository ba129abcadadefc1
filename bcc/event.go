/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

// vended by https://beta.boylstonchess.org/api/events
// Event represents a summary of an event in the Boylston Chess API
type Event struct {
	EventID     int       `json:"eventId"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	DateDisplay string    `json:"dateDisplay"`
}

// vended by https://beta.boylstonchess.org/api/event/<eventId>
// EventDetail represents detailed information about a specific event.
type EventDetail struct {
	EventID        int      `json:"eventId"`
	Title          string   `json:"title"`
	Dates          []string `json:"dates"`
	DateDisplay    string   `json:"dateDisplay"`
	Sections       []string `json:"sections"`
	SectionDisplay string   `json:"sectionDisplay"`
	EventFormat    string   `json:"eventFormat"`
	TimeControl    string   `json:"timeControl"`
	RoundTimes     string   `json:"roundTimes"`
	NumRounds      int      `json:"numRounds"`
	NumEntries     int      `json:"numEntries"`
	Entries        []Entry  `json:"entries"`
}

// Entry represents a single registration entry for an event.
type Entry struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UscfID        int    `json:"uscfId"`
	SectionName   string `json:"sectionName"`
	ByeRequests   string `json:"byeRequests"`
	PrimaryRating string `json:"primaryRating"`
}

// FirstRoundDate parses the first scheduled date of the event, or zero
// when the schedule is not published.
func (d *EventDetail) FirstRoundDate() time.Time {
	for _, ds := range d.Dates {
		when, err := internal.ParseDateOrZero(ds)
		if err == nil && !when.IsZero() {
			return when
		}
	}
	return time.Time{}
}

// GetEvents fetches the list of upcoming and recent club events.
func (c *Client) GetEvents() ([]Event, error) {
	var events []Event
	err := c.getJSONDaily(apiBase+"/events", &events)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch bcc events: %w", err)
	}

	return events, nil
}

// GetEventDetail fetches detailed information, including registration
// entries, for one event.
func (c *Client) GetEventDetail(eventID int64) (*EventDetail, error) {
	var detail EventDetail
	url := fmt.Sprintf("%v/event/%d", apiBase, eventID)
	if err := c.getJSON(url, &detail); err != nil {
		return nil, fmt.Errorf("unable to fetch bcc event %d: %w", eventID,
			err)
	}

	return &detail, nil
}

func getJSONWith(client *http.Client, url string, out any) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to build request (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (do): %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to fetch %v: http status: %v", url,
			resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to parse %v: %w", url, err)
	}

	return nil
}
