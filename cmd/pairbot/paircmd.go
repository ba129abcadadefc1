/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisspair/bcc"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/tournament"
)

type PairSubCommand string

const (
	PairHelpCmd      PairSubCommand = "help"
	PairCalCmd       PairSubCommand = "cal"
	PairNextCmd      PairSubCommand = "next"
	PairStandingsCmd PairSubCommand = "standings"
	PairChecklistCmd PairSubCommand = "checklist"
)

var pairSubCmdHdlrs = map[PairSubCommand]CmdHandler{
	PairHelpCmd:      pairHelpCmdHandler,
	PairCalCmd:       pairCalCmdHandler,
	PairNextCmd:      pairNextCmdHandler,
	PairStandingsCmd: pairStandingsCmdHandler,
	PairChecklistCmd: pairChecklistCmdHandler,
}

func pairCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := pairHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := pairSubCmdHdlrs[PairSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

//go:embed help.md
var helpText string

func pairHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(helpText)
	return resp
}

func pairCalCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	days := int64(14)  // default
	broadcast := false // default
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "days" {
				days = opt.IntValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	// enforce bounds
	if days <= 0 {
		days = 14
	} else if days > 60 {
		days = 60
	}

	now := time.Now()
	end := now.AddDate(0, 0, int(days))

	events, err := bcc.NewClient(ctx).GetEvents()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching events: %v", err)
		log.Printf("pairbot.cal: %v", resp.Data.Content)
		return resp
	}

	eventsByDate := make(map[string][]bcc.Event)
	for _, ev := range events {
		if ev.Date.Before(now) || ev.Date.After(end) {
			continue
		}
		key := ev.Date.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}

	if len(eventsByDate) == 0 {
		resp.Data.Content = fmt.Sprintf("No events found in the next %d days.", days)
		log.Printf("pairbot.cal: %v", resp.Data.Content)
		return resp
	}

	var datesList []string
	for d := range eventsByDate {
		datesList = append(datesList, d)
	}
	sort.Strings(datesList)
	var sb strings.Builder
	for _, d := range datesList {
		sb.WriteString(fmt.Sprintf("**%s**\n", d))
		for _, ev := range eventsByDate[d] {
			sb.WriteString(fmt.Sprintf("- %v (EventID:%v)\n", ev.Title, ev.EventID))
		}
	}
	sb.WriteString("\nRun /pair next <EventID> to pair the next round\n")
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// pairNextCmdHandler handles the /pair next command to compute next round
// pairings for every section of an event
func pairNextCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
	data := inter.ApplicationCommandData()
	broadcast := false // default
	systemName := "burstein"
	var eventID int64
	if len(data.Options) > 0 {
		found := false
		for _, opt := range data.Options[0].Options {
			if opt.Name == "eventid" {
				eventID = opt.IntValue()
				found = true
			} else if opt.Name == "system" {
				systemName = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
		if !found {
			resp.Data.Content = "Please provide an event ID."
			log.Printf("pairbot.next: %v", resp.Data.Content)
			return resp
		}
	} else {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("pairbot.next: %v", resp.Data.Content)
		return resp
	}

	info := swiss.GetInfo(swiss.SystemFromString(systemName))

	var sb strings.Builder
	err := forEachSection(ctx, eventID, func(section string,
		t *tournament.Tournament) error {

		pairings, err := info.ComputeMatching(t, nil)
		if err != nil {
			return pairingErrMsg(section, err)
		}
		sb.WriteString(bcc.BuildPairingsOutput(t, section, pairings))
		return nil
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error pairing event %d: %v", eventID,
			err)
		log.Printf("pairbot.next: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// pairStandingsCmdHandler handles the /pair standings command to display
// current standings
func pairStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
	data := inter.ApplicationCommandData()
	broadcast := false // default
	var eventID int64
	if len(data.Options) > 0 {
		found := false
		for _, opt := range data.Options[0].Options {
			if opt.Name == "eventid" {
				eventID = opt.IntValue()
				found = true
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
		if !found {
			resp.Data.Content = "Please provide an event ID."
			log.Printf("pairbot.standings: %v", resp.Data.Content)
			return resp
		}
	} else {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("pairbot.standings: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	err := forEachSection(ctx, eventID, func(section string,
		t *tournament.Tournament) error {

		sb.WriteString(bcc.BuildStandingsOutput(t, section))
		return nil
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching standings for event %d: %v",
			eventID, err)
		log.Printf("pairbot.standings: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// pairChecklistCmdHandler handles the /pair checklist command to display
// the arbiter audit sheet
func pairChecklistCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
	data := inter.ApplicationCommandData()
	broadcast := false // default
	var eventID int64
	if len(data.Options) > 0 {
		found := false
		for _, opt := range data.Options[0].Options {
			if opt.Name == "eventid" {
				eventID = opt.IntValue()
				found = true
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
		if !found {
			resp.Data.Content = "Please provide an event ID."
			log.Printf("pairbot.checklist: %v", resp.Data.Content)
			return resp
		}
	} else {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("pairbot.checklist: %v", resp.Data.Content)
		return resp
	}

	headers := []string{"Seed", "Player", "Score", "Balance", "Due"}
	annotate := func(p *tournament.Player) []string {
		return []string{
			fmt.Sprintf("%d", p.Seed),
			p.Name,
			fmt.Sprintf("%.1f", p.Score),
			fmt.Sprintf("%+d", p.ColorBalance()),
			p.ColorPreference().String(),
		}
	}

	var sb strings.Builder
	err := forEachSection(ctx, eventID, func(section string,
		t *tournament.Tournament) error {

		if section != "" {
			sb.WriteString(fmt.Sprintf("%s Section\n", section))
		}
		sb.WriteString(swiss.BuildChecklistOutput(headers, annotate, t,
			t.Eligible()))
		sb.WriteString("\n")
		return nil
	})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching event %d: %v", eventID,
			err)
		log.Printf("pairbot.checklist: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// forEachSection fetches the event's section snapshots and invokes fn once
// per section in display order.
func forEachSection(ctx context.Context, eventID int64,
	fn func(section string, t *tournament.Tournament) error) error {

	snaps, err := bcc.NewClient(ctx).GetSnapshots(ctx, eventID)
	if err != nil {
		return err
	}

	var names []string
	for name := range snaps {
		names = append(names, name)
	}
	sort.Sort(bcc.SectionSorter(names))

	for _, name := range names {
		if err := fn(name, snaps[name]); err != nil {
			return err
		}
	}
	return nil
}

// pairingErrMsg rewords engine failures with the remedy an arbiter needs.
func pairingErrMsg(section string, err error) error {
	prefix := ""
	if section != "" {
		prefix = fmt.Sprintf("%v section: ", section)
	}

	var nvp *swiss.NoValidPairingError
	var unsup *swiss.UnsupportedFeatureError
	switch {
	case errors.As(err, &nvp):
		return fmt.Errorf("%v%w; an arbiter must relax the rules or correct the tournament data",
			prefix, err)
	case errors.As(err, &unsup):
		return fmt.Errorf("%v%w; choose a different pairing system", prefix,
			err)
	}
	return fmt.Errorf("%v%w", prefix, err)
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
