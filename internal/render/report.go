package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/listening-report/internal/analysis"
)

type Options struct {
	// Hyperlinks wraps track names in terminal hyperlinks to the track page.
	Hyperlinks bool
}

// File is one text report written to the output directory.
type File struct {
	Name   string
	Render func(io.Writer) error
}

// Files returns every text report for r, in the order they are written.
func Files(r *analysis.Report, opts Options) []File {
	return []File{
		{"summary.txt", func(w io.Writer) error { return Summary(w, r) }},
		{"top_tracks_by_year.txt", func(w io.Writer) error { return TracksByPeriod(w, "Top tracks by year", r.YearRankings, opts) }},
		{"top_artists_by_year.txt", func(w io.Writer) error { return ArtistsByPeriod(w, "Top artists by year", r.YearRankings) }},
		{"top_tracks_by_month.txt", func(w io.Writer) error { return TracksByPeriod(w, "Top tracks by month", r.MonthRankings, opts) }},
		{"top_artists_by_month.txt", func(w io.Writer) error { return ArtistsByPeriod(w, "Top artists by month", r.MonthRankings) }},
		{"top_tracks.txt", func(w io.Writer) error { return TopTracks(w, r.TopTracks, opts) }},
		{"top_artists.txt", func(w io.Writer) error { return TopArtists(w, r.TopArtists) }},
		{"top_artist_tracks.txt", func(w io.Writer) error { return ArtistTracks(w, r.TopArtists, opts) }},
	}
}

type table struct {
	header []string
	rows   [][]string
}

func (t table) render(w io.Writer) error {
	tw := tablewriter.NewWriter(w)
	tw.Header(t.header)
	for _, row := range t.rows {
		if err := tw.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := tw.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

func Summary(w io.Writer, r *analysis.Report) error {
	m := r.Metadata
	fmt.Fprintf(w, "Total listening time: %s (%d plays)\n", Duration(m.TotalSeconds), m.TotalPlays)
	fmt.Fprintf(w, "Years played: %s\n", m.YearsPlayed)
	fmt.Fprintf(w, "First listen: %s\n", m.FirstListen)
	fmt.Fprintf(w, "Last listen: %s\n\n", m.LastListen)

	fmt.Fprintln(w, "Listening time by year")
	years := table{header: []string{"Year", "Time", "Plays"}}
	for _, y := range r.Years {
		years.rows = append(years.rows, []string{strconv.Itoa(y.Year), Duration(y.Seconds), strconv.Itoa(y.Plays)})
	}
	if err := years.render(w); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nListening time by month")
	months := table{header: []string{"Month", "Time", "Plays"}}
	for _, m := range r.Months {
		months.rows = append(months.rows, []string{periodLabel(m.Year, m.Month), Duration(m.Seconds), strconv.Itoa(m.Plays)})
	}
	return months.render(w)
}

func TracksByPeriod(w io.Writer, title string, rankings []analysis.PeriodRanking, opts Options) error {
	fmt.Fprintln(w, title)
	for _, p := range rankings {
		fmt.Fprintf(w, "\n%s\n", periodLabel(p.Year, p.Month))
		if err := trackTable(p.Tracks, opts).render(w); err != nil {
			return err
		}
	}
	return nil
}

func ArtistsByPeriod(w io.Writer, title string, rankings []analysis.PeriodRanking) error {
	fmt.Fprintln(w, title)
	for _, p := range rankings {
		fmt.Fprintf(w, "\n%s\n", periodLabel(p.Year, p.Month))
		if err := artistTable(p.Artists).render(w); err != nil {
			return err
		}
	}
	return nil
}

func TopTracks(w io.Writer, tracks []analysis.TrackStat, opts Options) error {
	fmt.Fprintf(w, "Top %d tracks of all time\n", len(tracks))
	return trackTable(tracks, opts).render(w)
}

func TopArtists(w io.Writer, artists []analysis.ArtistStat) error {
	fmt.Fprintf(w, "Top %d artists of all time\n", len(artists))
	return artistTable(artists).render(w)
}

func ArtistTracks(w io.Writer, artists []analysis.ArtistStat, opts Options) error {
	fmt.Fprintln(w, "Top tracks of the top artists")
	for i, a := range artists {
		fmt.Fprintf(w, "\n%d. %s (%s, %d plays)\n", i+1, displayName(a.Name, unknownArtist), Duration(a.Seconds), a.Plays)
		if len(a.TopTracks) == 0 {
			fmt.Fprintln(w, "No tracks played often enough")
			continue
		}
		if err := trackTable(a.TopTracks, opts).render(w); err != nil {
			return err
		}
	}
	return nil
}

func trackTable(tracks []analysis.TrackStat, opts Options) table {
	t := table{header: []string{"#", "Track", "Time", "Plays", "Years played"}}
	for i, tr := range tracks {
		name := displayName(tr.Name, unknownTrack)
		if opts.Hyperlinks && tr.URI != nil {
			name = Hyperlink(name, TrackURL(*tr.URI))
		}
		t.rows = append(t.rows, []string{strconv.Itoa(i + 1), name, Duration(tr.Seconds), strconv.Itoa(tr.Plays), tr.YearsPlayed})
	}
	return t
}

func artistTable(artists []analysis.ArtistStat) table {
	t := table{header: []string{"#", "Artist", "Time", "Plays", "Years played"}}
	for i, a := range artists {
		t.rows = append(t.rows, []string{strconv.Itoa(i + 1), displayName(a.Name, unknownArtist), Duration(a.Seconds), strconv.Itoa(a.Plays), a.YearsPlayed})
	}
	return t
}

func periodLabel(year, month int) string {
	if month == 0 {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%s %d", time.Month(month), year)
}
