package history

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/araddon/dateparse"
)

const timestampField = "ts"

// record mirrors one entry of the extended streaming history export. Only the
// fields used by the reports are decoded.
type record struct {
	Timestamp  *string `json:"ts"`
	MsPlayed   *int64  `json:"ms_played"`
	TrackName  *string `json:"master_metadata_track_name"`
	TrackURI   *string `json:"spotify_track_uri"`
	ArtistName *string `json:"master_metadata_album_artist_name"`
}

// Normalize flattens raw input units into events. A unit is either a single
// JSON object or an array of them; anything else is skipped. Every record
// must carry a timestamp: the check runs over all records before any event is
// built, so a missing field fails the whole run.
func Normalize(units []json.RawMessage) ([]Event, error) {
	var records []record
	for i, unit := range units {
		decoded, err := decodeUnit(unit)
		if err != nil {
			return nil, fmt.Errorf("decoding input unit %d: %w", i, err)
		}
		records = append(records, decoded...)
	}

	for i, r := range records {
		if r.Timestamp == nil {
			return nil, &MissingFieldError{Field: timestampField, Record: i}
		}
	}

	events := make([]Event, 0, len(records))
	for i, r := range records {
		e, err := r.toEvent()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func decodeUnit(unit json.RawMessage) ([]record, error) {
	trimmed := bytes.TrimSpace(unit)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	switch trimmed[0] {
	case '{':
		var r record
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, err
		}
		return []record{r}, nil

	case '[':
		var rs []record
		if err := json.Unmarshal(trimmed, &rs); err != nil {
			return nil, err
		}
		return rs, nil

	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return nil, nil
	}
}

func (r record) toEvent() (Event, error) {
	t, err := dateparse.ParseStrict(*r.Timestamp)
	if err != nil {
		return Event{}, fmt.Errorf("parsing timestamp %q: %w", *r.Timestamp, err)
	}

	e := Event{
		Time:       t.UTC(),
		TrackName:  nullString(r.TrackName),
		TrackURI:   nullString(r.TrackURI),
		ArtistName: nullString(r.ArtistName),
	}
	if r.MsPlayed != nil {
		e.MsPlayed = *r.MsPlayed
	}
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
