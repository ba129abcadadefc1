/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mikeb26/swisspair/bcc"
)

// this program exists just to seed the http cache for upcoming bcc events

func main() {
	ctx := context.Background()
	client := bcc.NewClient(ctx)

	events, err := client.GetEvents()
	if err != nil {
		// best effort
		return
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, 30)
	for _, ev := range events {
		if ev.Date.Before(now.AddDate(0, 0, -7)) || ev.Date.After(horizon) {
			continue
		}

		_, err := client.GetSnapshots(ctx, int64(ev.EventID))
		time.Sleep(2 * time.Second) // avoid pegging boylstonchess.org
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded ev:%v\n", ev.Title)
	}
}
