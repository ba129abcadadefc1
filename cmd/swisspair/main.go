/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/mikeb26/swisspair/bcc"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/tournament"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":       handleHelp,
	"cal":        handleCal,
	"pair":       handlePair,
	"checklist":  handleChecklist,
	"accelerate": handleAccelerate,
	"standings":  handleStandings,
	"systems":    handleSystems,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleSystems(ctx context.Context, args []string) {
	fmt.Printf("Supported pairing systems:\n")
	fmt.Printf("  burstein (default)\n")
	fmt.Printf("  dutch\n")
}

func handleCal(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("cal", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	events, err := bcc.NewClient(ctx).GetEvents()
	if err != nil {
		log.Fatalf("Error fetching events: %v", err)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	for _, ev := range events {
		fmt.Printf("%s  %s (EventID:%d)\n", ev.Date.Format("2006-01-02"),
			ev.Title, ev.EventID)
	}
	fmt.Printf("\nRun '%s pair --eventid <EventID>' to pair the next round\n",
		os.Args[0])
}

func handlePair(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	eventID := fs.Int("eventid", 0, "Event ID to pair")
	snapshot := fs.String("snapshot", "", "Tournament snapshot file to pair")
	systemName := fs.String("system", "burstein", "Pairing system to apply")
	verbose := fs.Bool("verbose", false, "Write the pairing audit trail to stderr")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	info := resolveSystem(*systemName)
	var checklist *os.File
	if *verbose {
		checklist = os.Stderr
	}

	for _, snap := range loadSnapshots(ctx, fs, *eventID, *snapshot) {
		if checklist != nil && snap.section != "" {
			fmt.Fprintf(checklist, "== %s\n", snap.section)
		}
		pairings, err := info.ComputeMatching(snap.t, writerOrNil(checklist))
		if err != nil {
			fatalPairingErr(snap.section, err)
		}
		fmt.Print(bcc.BuildPairingsOutput(snap.t, snap.section, pairings))
	}
}

// writerOrNil keeps a nil *os.File from becoming a non-nil io.Writer.
func writerOrNil(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}

// resolveSystem maps the --system flag through the registry. Unrecognized
// names resolve to the unsupported placeholder, whose operations fail with
// a configuration error and remedy.
func resolveSystem(name string) swiss.Info {
	return swiss.GetInfo(swiss.SystemFromString(name))
}

func handleChecklist(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("checklist", flag.ExitOnError)
	eventID := fs.Int("eventid", 0, "Event ID to audit")
	snapshot := fs.String("snapshot", "", "Tournament snapshot file to audit")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
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

	for _, snap := range loadSnapshots(ctx, fs, *eventID, *snapshot) {
		if snap.section != "" {
			fmt.Printf("%s Section\n", snap.section)
		}
		fmt.Print(swiss.BuildChecklistOutput(headers, annotate, snap.t,
			snap.t.Eligible()))
		fmt.Printf("\n")
	}
}

func handleAccelerate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("accelerate", flag.ExitOnError)
	snapshot := fs.String("snapshot", "", "Tournament snapshot file to update")
	systemName := fs.String("system", "burstein", "Pairing system to apply")
	out := fs.String("out", "", "File to write the updated snapshot to (default stdout)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *snapshot == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --snapshot file; acceleration updates caller-owned state.")
		fs.Usage()
		os.Exit(1)
	}

	t := loadSnapshotFile(*snapshot)
	if err := resolveSystem(*systemName).UpdateAccelerations(t); err != nil {
		fatalPairingErr("", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Error creating %v: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := t.Save(w); err != nil {
		log.Fatalf("Error writing snapshot: %v", err)
	}
}

func handleStandings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	eventID := fs.Int("eventid", 0, "Event ID to fetch standings for")
	snapshot := fs.String("snapshot", "", "Tournament snapshot file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	for _, snap := range loadSnapshots(ctx, fs, *eventID, *snapshot) {
		fmt.Print(bcc.BuildStandingsOutput(snap.t, snap.section))
	}
}

type sectionSnapshot struct {
	section string
	t       *tournament.Tournament
}

// loadSnapshots resolves the input source common to most commands: either
// a local snapshot file or the club API by event id.
func loadSnapshots(ctx context.Context, fs *flag.FlagSet, eventID int,
	snapshot string) []sectionSnapshot {

	if (eventID <= 0) == (snapshot == "") {
		fmt.Fprintln(os.Stderr, "Please provide either --eventid or --snapshot.")
		fs.Usage()
		os.Exit(1)
	}

	if snapshot != "" {
		return []sectionSnapshot{{t: loadSnapshotFile(snapshot)}}
	}

	snaps, err := bcc.NewClient(ctx).GetSnapshots(ctx, int64(eventID))
	if err != nil {
		log.Fatalf("Error fetching event %d: %v", eventID, err)
	}
	var names []string
	for name := range snaps {
		names = append(names, name)
	}
	sort.Sort(bcc.SectionSorter(names))

	var out []sectionSnapshot
	for _, name := range names {
		out = append(out, sectionSnapshot{section: name, t: snaps[name]})
	}
	return out
}

func loadSnapshotFile(path string) *tournament.Tournament {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error opening %v: %v", path, err)
	}
	defer f.Close()

	t, err := tournament.Load(f)
	if err != nil {
		log.Fatalf("Error loading %v: %v", path, err)
	}
	return t
}

// fatalPairingErr surfaces the two engine failure kinds with their
// distinct remedies.
func fatalPairingErr(section string, err error) {
	prefix := ""
	if section != "" {
		prefix = fmt.Sprintf("%v section: ", section)
	}

	var nvp *swiss.NoValidPairingError
	var unsup *swiss.UnsupportedFeatureError
	switch {
	case errors.As(err, &nvp):
		log.Fatalf("%v%v\nThe round cannot be paired as recorded; an arbiter must relax the rules or correct the tournament data.",
			prefix, err)
	case errors.As(err, &unsup):
		log.Fatalf("%v%v\nChoose a different pairing system (see '%s systems').",
			prefix, err, os.Args[0])
	default:
		log.Fatalf("%v%v", prefix, err)
	}
}
