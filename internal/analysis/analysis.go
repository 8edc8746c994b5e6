package analysis

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ademuri/listening-report/internal/history"
)

// Options sets how many rows each ranked view keeps.
type Options struct {
	YearTracks   int
	YearArtists  int
	MonthTracks  int
	MonthArtists int
	TopTracks    int
	TopArtists   int

	// Tracks listed under each of the top artists, and the play count a
	// track has to exceed to be listed there.
	ArtistTracks        int
	ArtistTrackMinPlays int
}

func DefaultOptions() Options {
	return Options{
		YearTracks:          5,
		YearArtists:         5,
		MonthTracks:         5,
		MonthArtists:        5,
		TopTracks:           10,
		TopArtists:          15,
		ArtistTracks:        5,
		ArtistTrackMinPlays: 5,
	}
}

// tables holds every grouped table the report is built from. Each field is
// filled by its own goroutine.
type tables struct {
	years        []Row[int]
	months       []Row[YearMonth]
	tracks       []Row[TrackKey]
	artists      []Row[ArtistKey]
	artistTracks []Row[ArtistTrackKey]
	yearTracks   []Row[YearTrackKey]
	yearArtists  []Row[YearArtistKey]
	monthTracks  []Row[MonthTrackKey]
	monthArtists []Row[MonthArtistKey]

	trackYears       map[TrackKey][]int
	artistYears      map[ArtistKey][]int
	artistTrackYears map[ArtistTrackKey][]int
}

// GenerateReport aggregates the events and builds every ranked view.
func GenerateReport(ctx context.Context, events []history.Event, opts Options) (*Report, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no events to analyze")
	}

	t, err := aggregate(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("aggregating events: %w", err)
	}

	report := &Report{
		Metadata: metadata(events, t.years),
	}

	// 1. Totals per period
	for _, r := range t.years {
		report.Years = append(report.Years, PeriodStat{Year: r.Key, Seconds: r.Seconds(), Plays: r.Plays})
	}
	for _, r := range t.months {
		report.Months = append(report.Months, PeriodStat{Year: r.Key.Year, Month: int(r.Key.Month), Seconds: r.Seconds(), Plays: r.Plays})
	}

	// 2. Per-year rankings
	yearTracks := TopN(t.yearTracks, func(k YearTrackKey) int { return k.Year }, ByTime[YearTrackKey], opts.YearTracks, 0)
	yearArtists := TopN(t.yearArtists, func(k YearArtistKey) int { return k.Year }, ByTime[YearArtistKey], opts.YearArtists, 0)
	yearTracksByKey := groupIndex(yearTracks)
	yearArtistsByKey := groupIndex(yearArtists)
	for _, y := range t.years {
		ranking := PeriodRanking{Year: y.Key}
		for _, r := range yearTracksByKey[y.Key] {
			ranking.Tracks = append(ranking.Tracks, t.trackStat(r.Key.Track, r.Ms, r.Plays))
		}
		for _, r := range yearArtistsByKey[y.Key] {
			ranking.Artists = append(ranking.Artists, t.artistStat(r.Key.Artist, r.Ms, r.Plays))
		}
		report.YearRankings = append(report.YearRankings, ranking)
	}

	// 3. Per-month rankings
	monthTracks := TopN(t.monthTracks, func(k MonthTrackKey) YearMonth { return k.Period }, ByTime[MonthTrackKey], opts.MonthTracks, 0)
	monthArtists := TopN(t.monthArtists, func(k MonthArtistKey) YearMonth { return k.Period }, ByTime[MonthArtistKey], opts.MonthArtists, 0)
	monthTracksByKey := groupIndex(monthTracks)
	monthArtistsByKey := groupIndex(monthArtists)
	for _, m := range t.months {
		ranking := PeriodRanking{Year: m.Key.Year, Month: int(m.Key.Month)}
		for _, r := range monthTracksByKey[m.Key] {
			ranking.Tracks = append(ranking.Tracks, t.trackStat(r.Key.Track, r.Ms, r.Plays))
		}
		for _, r := range monthArtistsByKey[m.Key] {
			ranking.Artists = append(ranking.Artists, t.artistStat(r.Key.Artist, r.Ms, r.Plays))
		}
		report.MonthRankings = append(report.MonthRankings, ranking)
	}

	// 4. All-time rankings
	for _, r := range Top(t.tracks, ByTime[TrackKey], opts.TopTracks, 0) {
		report.TopTracks = append(report.TopTracks, t.trackStat(r.Key, r.Ms, r.Plays))
	}

	artistTracks := groupIndex(TopN(t.artistTracks, func(k ArtistTrackKey) ArtistKey { return ArtistKey{Name: k.Artist} },
		ByTime[ArtistTrackKey], opts.ArtistTracks, opts.ArtistTrackMinPlays))
	for _, r := range Top(t.artists, ByTime[ArtistKey], opts.TopArtists, 0) {
		stat := t.artistStat(r.Key, r.Ms, r.Plays)
		for _, tr := range artistTracks[r.Key] {
			track := t.trackStat(tr.Key.Track, tr.Ms, tr.Plays)
			track.Artist = stat.Name
			track.Years = t.artistTrackYears[tr.Key]
			track.YearsPlayed = CompactYears(track.Years)
			stat.TopTracks = append(stat.TopTracks, track)
		}
		report.TopArtists = append(report.TopArtists, stat)
	}

	return report, nil
}

// aggregate builds the grouped tables concurrently. The event slice is only
// read, so no locking is needed beyond waiting for the group.
func aggregate(ctx context.Context, events []history.Event) (*tables, error) {
	t := &tables{}
	g, ctx := errgroup.WithContext(ctx)

	run := func(f func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f()
			return nil
		})
	}

	run(func() { t.years = ByYear(events) })
	run(func() { t.months = ByYearMonth(events) })
	run(func() { t.tracks = ByEntity(events, TrackOf) })
	run(func() { t.artists = ByEntity(events, ArtistOf) })
	run(func() { t.artistTracks = ByEntity(events, ArtistTrackOf) })
	run(func() { t.yearTracks = ByEntity(events, TrackInYear) })
	run(func() { t.yearArtists = ByEntity(events, ArtistInYear) })
	run(func() { t.monthTracks = ByEntity(events, TrackInMonth) })
	run(func() { t.monthArtists = ByEntity(events, ArtistInMonth) })
	run(func() { t.trackYears = YearsFor(events, TrackOf) })
	run(func() { t.artistYears = YearsFor(events, ArtistOf) })
	run(func() { t.artistTrackYears = YearsFor(events, ArtistTrackOf) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *tables) trackStat(k TrackKey, ms int64, plays int) TrackStat {
	years := t.trackYears[k]
	return TrackStat{
		Name:        nullable(k.Name),
		URI:         nullable(k.URI),
		Seconds:     float64(ms) / 1000.0,
		Plays:       plays,
		Years:       years,
		YearsPlayed: CompactYears(years),
	}
}

func (t *tables) artistStat(k ArtistKey, ms int64, plays int) ArtistStat {
	years := t.artistYears[k]
	return ArtistStat{
		Name:        nullable(k.Name),
		Seconds:     float64(ms) / 1000.0,
		Plays:       plays,
		Years:       years,
		YearsPlayed: CompactYears(years),
	}
}

func groupIndex[G comparable, K comparable](groups []Group[G, K]) map[G][]Row[K] {
	index := make(map[G][]Row[K], len(groups))
	for _, g := range groups {
		index[g.Key] = g.Rows
	}
	return index
}

func metadata(events []history.Event, years []Row[int]) ReportMetadata {
	first, last := events[0].Time, events[0].Time
	for _, e := range events {
		if e.Time.Before(first) {
			first = e.Time
		}
		if e.Time.After(last) {
			last = e.Time
		}
	}

	var ys []int
	for _, y := range years {
		ys = append(ys, y.Key)
	}

	return ReportMetadata{
		GeneratedDate: time.Now().Format("2006-01-02"),
		TotalSeconds:  float64(Total(events)) / 1000.0,
		TotalPlays:    len(events),
		FirstListen:   first.Format(time.RFC3339),
		LastListen:    last.Format(time.RFC3339),
		YearsPlayed:   CompactYears(ys),
	}
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
