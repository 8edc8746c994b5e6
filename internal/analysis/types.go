package analysis

// Report is the top-level structure for the listening history report.
type Report struct {
	Metadata      ReportMetadata  `yaml:"report_metadata"`
	Years         []PeriodStat    `yaml:"years"`
	Months        []PeriodStat    `yaml:"months"`
	YearRankings  []PeriodRanking `yaml:"top_by_year"`
	MonthRankings []PeriodRanking `yaml:"top_by_month"`
	TopTracks     []TrackStat     `yaml:"top_tracks"`
	TopArtists    []ArtistStat    `yaml:"top_artists"`
}

type ReportMetadata struct {
	GeneratedDate string  `yaml:"generated_date"`
	TotalSeconds  float64 `yaml:"total_seconds"`
	TotalPlays    int     `yaml:"total_plays"`
	FirstListen   string  `yaml:"first_listen"`
	LastListen    string  `yaml:"last_listen"`
	YearsPlayed   string  `yaml:"years_played"`
}

// PeriodStat is the listening time of one year, or of one month when Month
// is set.
type PeriodStat struct {
	Year    int     `yaml:"year"`
	Month   int     `yaml:"month,omitempty"`
	Seconds float64 `yaml:"seconds"`
	Plays   int     `yaml:"plays"`
}

type PeriodRanking struct {
	Year    int          `yaml:"year"`
	Month   int          `yaml:"month,omitempty"`
	Tracks  []TrackStat  `yaml:"tracks"`
	Artists []ArtistStat `yaml:"artists"`
}

// TrackStat is a ranked track. Years always covers the whole history, not
// just the period the track was ranked in. Names missing from the history are
// nil, so they stay apart from names that are present but empty.
type TrackStat struct {
	Name        *string `yaml:"name"`
	URI         *string `yaml:"uri,omitempty"`
	Artist      *string `yaml:"artist,omitempty"`
	Seconds     float64 `yaml:"seconds"`
	Plays       int     `yaml:"plays"`
	Years       []int   `yaml:"years,flow"`
	YearsPlayed string  `yaml:"years_played"`
}

type ArtistStat struct {
	Name        *string     `yaml:"name"`
	Seconds     float64     `yaml:"seconds"`
	Plays       int         `yaml:"plays"`
	Years       []int       `yaml:"years,flow"`
	YearsPlayed string      `yaml:"years_played"`
	TopTracks   []TrackStat `yaml:"top_tracks,omitempty"`
}
