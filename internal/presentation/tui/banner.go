package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner with the given version.
func PrintBanner(w io.Writer, profile termenv.Profile, version string) {
	lines := []struct {
		text  string
		color string
	}{
		{"           _                              ", "#34d399"},
		{"  _ _ ___ | |_  ___  __ _  _ _  ___ ___   ", "#2dd4bf"},
		{" | '_/ -_)| ' \\/ -_)/ _` || '_|(_-</ -_)  ", "#22d3ee"},
		{" |_| \\___||_||_\\___|\\__,_||_|  /__/\\___|  ", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	fmt.Fprintln(w, profile.String(" "+version).Faint())
	fmt.Fprintln(w)
}
