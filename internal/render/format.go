package render

import (
	"fmt"
	"strings"
)

const (
	trackURIPrefix = "spotify:track:"
	trackURLPrefix = "https://open.spotify.com/track/"

	unknownTrack  = "Unknown track"
	unknownArtist = "Unknown artist"
	emptyName     = `""`
)

// Duration formats seconds as "HHh MMm SSs". Hours are not wrapped into days
// and fractions of a second are dropped.
func Duration(seconds float64) string {
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, secs)
}

// TrackURL turns a track URI into a link that opens in the browser. Other
// kinds of URI have no link.
func TrackURL(uri string) string {
	if !strings.HasPrefix(uri, trackURIPrefix) {
		return ""
	}
	id := uri[strings.LastIndex(uri, ":")+1:]
	if id == "" {
		return ""
	}
	return trackURLPrefix + id
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink.
func Hyperlink(text, url string) string {
	if url == "" {
		return text
	}
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

// displayName labels names missing from the history with unknown, and names
// that are present but empty with emptyName.
func displayName(name *string, unknown string) string {
	switch {
	case name == nil:
		return unknown
	case *name == "":
		return emptyName
	}
	return *name
}
