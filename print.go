package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/philtim/offsetclock/clock"
	"github.com/philtim/offsetclock/offset"
	"github.com/philtim/offsetclock/script"
	"github.com/philtim/offsetclock/zones"
)

var (
	nameColor  = color.New(color.FgCyan, color.Bold)
	timeColor  = color.New(color.FgMagenta, color.Bold)
	mutedColor = color.New(color.FgHiBlack)
)

// printClocks writes the home clock and every entry once
func printClocks(ctx context.Context, w io.Writer, repo *zones.Repository, src clock.Source) {
	now := src.Now()
	home := repo.Home(ctx)
	entries := repo.List(ctx)

	fmt.Fprintf(w, "%s %s  %s\n",
		nameColor.Sprintf("%-20s", home.Name),
		mutedColor.Sprintf("%-7s", home.Label),
		timeColor.Sprint(clock.Format(now, home.Offset)))

	if len(entries) == 0 {
		fmt.Fprintln(w, mutedColor.Sprint("No time zones added yet."))
		return
	}

	fmt.Fprintln(w, mutedColor.Sprint(strings.Repeat("─", 50)))

	clocks := clocksFor(entries)

	for _, c := range clocks {
		fmt.Fprintf(w, "%s %s  %s  %s\n",
			nameColor.Sprintf("%-20s", c.Name),
			mutedColor.Sprintf("%-7s", c.Label),
			timeColor.Sprint(c.FormatAt(now)),
			mutedColor.Sprintf("%s %s", c.FormatDateAt(now), clock.Lead(home.Offset, c.Offset)))
	}
}

// printConversion converts input from the home offset to every entry
func printConversion(ctx context.Context, w io.Writer, repo *zones.Repository, src clock.Source, input string) error {
	now := src.Now()
	home := repo.Home(ctx)

	base, err := clock.ConvertOn(now, input, home.Offset, home.Offset)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s  %s\n",
		nameColor.Sprintf("%-20s", home.Name),
		mutedColor.Sprintf("%-7s", home.Label),
		timeColor.Sprint(base.String()))

	for _, e := range repo.List(ctx) {
		conv, err := clock.ConvertOn(now, input, home.Offset, e.Offset)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s %s  %s",
			nameColor.Sprintf("%-20s", e.Name),
			mutedColor.Sprintf("%-7s", e.Label),
			timeColor.Sprint(conv.String()))
		if s := dayShift(conv.DayShift); s != "" {
			line += " " + mutedColor.Sprint(s)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// exportScript writes the script for the entry called name ("home" selects the home entry)
func exportScript(ctx context.Context, w io.Writer, repo *zones.Repository, dir string, kind script.Kind, name string) error {
	target, ok := findEntry(ctx, repo, name)
	if !ok {
		return fmt.Errorf("no time zone named '%s'", name)
	}

	path, err := script.Export(dir, kind, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s (%s)\n", path, scriptTarget(kind, target))
	return nil
}

// findEntry looks an entry up by case-insensitive name
func findEntry(ctx context.Context, repo *zones.Repository, name string) (zones.Entry, bool) {
	home := repo.Home(ctx)
	if strings.EqualFold(name, zones.HomeID) || strings.EqualFold(name, home.Name) {
		return home, true
	}
	for _, e := range repo.List(ctx) {
		if strings.EqualFold(name, e.Name) {
			return e, true
		}
	}
	return zones.Entry{}, false
}

// clocksFor builds clocks for entries, sorted west to east.
// The stored label is kept so "GMT-5" is not displayed as "UTC-5".
func clocksFor(entries []zones.Entry) []*clock.Clock {
	clocks := make([]*clock.Clock, 0, len(entries))
	for _, e := range entries {
		c, err := clock.New(e.Name, e.Label)
		if err != nil || c.Offset != e.Offset {
			c = clock.FromOffset(e.Name, e.Offset)
		}
		clocks = append(clocks, c)
	}
	clock.SortByOffset(clocks)
	return clocks
}

// scriptTarget names the system zone a script would switch to
func scriptTarget(kind script.Kind, e zones.Entry) string {
	if kind == script.Windows {
		if e.WindowsZone != "" {
			return e.WindowsZone
		}
		return offset.WindowsZone(e.Offset)
	}
	return script.EtcZone(e.Offset)
}
