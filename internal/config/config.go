package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ademuri/listening-report/internal/analysis"
)

// Config is everything a report run needs. It is built from flags and the
// config file, then passed to the pipeline explicitly.
type Config struct {
	Input      string `mapstructure:"input" validate:"required"`
	Output     string `mapstructure:"output" validate:"required"`
	Clean      bool   `mapstructure:"clean"`
	Hyperlinks bool   `mapstructure:"hyperlinks"`
	Limits     Limits `mapstructure:",squash"`
}

type Limits struct {
	YearTracks          int `mapstructure:"year_tracks" validate:"gte=0"`
	YearArtists         int `mapstructure:"year_artists" validate:"gte=0"`
	MonthTracks         int `mapstructure:"month_tracks" validate:"gte=0"`
	MonthArtists        int `mapstructure:"month_artists" validate:"gte=0"`
	TopTracks           int `mapstructure:"top_tracks" validate:"gte=0"`
	TopArtists          int `mapstructure:"top_artists" validate:"gte=0"`
	ArtistTracks        int `mapstructure:"artist_tracks" validate:"gte=0"`
	ArtistTrackMinPlays int `mapstructure:"artist_track_min_plays" validate:"gte=0"`
}

func Default() Config {
	opts := analysis.DefaultOptions()
	return Config{
		Input:  "*.json",
		Output: "./reports",
		Clean:  true,
		Limits: Limits{
			YearTracks:          opts.YearTracks,
			YearArtists:         opts.YearArtists,
			MonthTracks:         opts.MonthTracks,
			MonthArtists:        opts.MonthArtists,
			TopTracks:           opts.TopTracks,
			TopArtists:          opts.TopArtists,
			ArtistTracks:        opts.ArtistTracks,
			ArtistTrackMinPlays: opts.ArtistTrackMinPlays,
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Options converts the limits to the form the analysis expects.
func (c Config) Options() analysis.Options {
	return analysis.Options{
		YearTracks:          c.Limits.YearTracks,
		YearArtists:         c.Limits.YearArtists,
		MonthTracks:         c.Limits.MonthTracks,
		MonthArtists:        c.Limits.MonthArtists,
		TopTracks:           c.Limits.TopTracks,
		TopArtists:          c.Limits.TopArtists,
		ArtistTracks:        c.Limits.ArtistTracks,
		ArtistTrackMinPlays: c.Limits.ArtistTrackMinPlays,
	}
}
