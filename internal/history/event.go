package history

import (
	"database/sql"
	"time"
)

// Event is a single playback taken from the streaming history export.
type Event struct {
	Time       time.Time
	TrackName  sql.NullString
	TrackURI   sql.NullString
	ArtistName sql.NullString
	MsPlayed   int64
}

func (e Event) Year() int {
	return e.Time.Year()
}

func (e Event) Month() time.Month {
	return e.Time.Month()
}

// Seconds returns the play duration in seconds.
func (e Event) Seconds() float64 {
	return float64(e.MsPlayed) / 1000.0
}

// Between returns the events played in [start, end). A zero start or end
// leaves that side of the range open.
func Between(events []Event, start, end time.Time) []Event {
	if start.IsZero() && end.IsZero() {
		return events
	}

	var filtered []Event
	for _, e := range events {
		if !start.IsZero() && e.Time.Before(start) {
			continue
		}
		if !end.IsZero() && !e.Time.Before(end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
