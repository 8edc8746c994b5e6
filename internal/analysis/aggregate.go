package analysis

import (
	"database/sql"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/ademuri/listening-report/internal/history"
)

// Row is one aggregated group: the summed play time and the number of
// events that contributed to it. Plays counts every event, including those
// with no recorded play time.
type Row[K comparable] struct {
	Key   K
	Ms    int64
	Plays int
}

func (r Row[K]) Seconds() float64 {
	return float64(r.Ms) / 1000.0
}

type YearMonth struct {
	Year  int
	Month time.Month
}

// TrackKey identifies a track by name and URI. A missing value is a key of
// its own, so all nulls group together.
type TrackKey struct {
	Name sql.NullString
	URI  sql.NullString
}

type ArtistKey struct {
	Name sql.NullString
}

type ArtistTrackKey struct {
	Artist sql.NullString
	Track  TrackKey
}

type YearTrackKey struct {
	Year  int
	Track TrackKey
}

type YearArtistKey struct {
	Year   int
	Artist ArtistKey
}

type MonthTrackKey struct {
	Period YearMonth
	Track  TrackKey
}

type MonthArtistKey struct {
	Period YearMonth
	Artist ArtistKey
}

func TrackOf(e history.Event) TrackKey {
	return TrackKey{Name: e.TrackName, URI: e.TrackURI}
}

func ArtistOf(e history.Event) ArtistKey {
	return ArtistKey{Name: e.ArtistName}
}

func ArtistTrackOf(e history.Event) ArtistTrackKey {
	return ArtistTrackKey{Artist: e.ArtistName, Track: TrackOf(e)}
}

func YearMonthOf(e history.Event) YearMonth {
	return YearMonth{Year: e.Year(), Month: e.Month()}
}

func TrackInYear(e history.Event) YearTrackKey {
	return YearTrackKey{Year: e.Year(), Track: TrackOf(e)}
}

func ArtistInYear(e history.Event) YearArtistKey {
	return YearArtistKey{Year: e.Year(), Artist: ArtistOf(e)}
}

func TrackInMonth(e history.Event) MonthTrackKey {
	return MonthTrackKey{Period: YearMonthOf(e), Track: TrackOf(e)}
}

func ArtistInMonth(e history.Event) MonthArtistKey {
	return MonthArtistKey{Period: YearMonthOf(e), Artist: ArtistOf(e)}
}

// Total returns the summed play time of all events, in milliseconds.
func Total(events []history.Event) int64 {
	var total int64
	for _, e := range events {
		total += e.MsPlayed
	}
	return total
}

// ByEntity groups events by key. Rows come out in the order their key first
// appears in events.
func ByEntity[K comparable](events []history.Event, key func(history.Event) K) []Row[K] {
	index := map[K]int{}
	var rows []Row[K]

	for _, e := range events {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, Row[K]{Key: k})
		}
		rows[i].Ms += e.MsPlayed
		rows[i].Plays++
	}

	return rows
}

// ByYear sums play time per calendar year, oldest first.
func ByYear(events []history.Event) []Row[int] {
	rows := ByEntity(events, history.Event.Year)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// ByYearMonth sums play time per calendar month, oldest first.
func ByYearMonth(events []history.Event) []Row[YearMonth] {
	rows := ByEntity(events, YearMonthOf)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key.Before(rows[j].Key)
	})
	return rows
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// YearsFor maps every key to the sorted, distinct years in which it was
// played.
func YearsFor[K comparable](events []history.Event, key func(history.Event) K) map[K][]int {
	seen := map[K]map[int]struct{}{}
	for _, e := range events {
		k := key(e)
		if seen[k] == nil {
			seen[k] = map[int]struct{}{}
		}
		seen[k][e.Year()] = struct{}{}
	}

	years := make(map[K][]int, len(seen))
	for k, set := range seen {
		ys := lo.Keys(set)
		sort.Ints(ys)
		years[k] = ys
	}
	return years
}
