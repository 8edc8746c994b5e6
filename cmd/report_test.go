package cmd

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/listening-report/internal/analysis"
	"github.com/ademuri/listening-report/internal/config"
	"github.com/ademuri/listening-report/internal/history"
)

const testHistory = `[
  {"ts": "2021-03-01T10:00:00Z", "ms_played": 1000, "master_metadata_track_name": "Song A", "spotify_track_uri": "spotify:track:a", "master_metadata_album_artist_name": "Artist X"},
  {"ts": "2021-03-02T10:00:00Z", "ms_played": 20000, "master_metadata_track_name": "Song B", "spotify_track_uri": "spotify:track:b", "master_metadata_album_artist_name": "Artist X"},
  {"ts": "2021-04-01T10:00:00Z", "ms_played": 2000, "master_metadata_track_name": "Song A", "spotify_track_uri": "spotify:track:a", "master_metadata_album_artist_name": "Artist X"}
]`

const testHistoryLater = `{"ts": "2023-01-05T10:00:00Z", "ms_played": 1500, "master_metadata_track_name": "Song A", "spotify_track_uri": "spotify:track:a", "master_metadata_album_artist_name": "Artist X"}`

var reportFiles = []string{
	"report.yaml",
	"summary.txt",
	"top_artist_tracks.txt",
	"top_artists.txt",
	"top_artists_by_month.txt",
	"top_artists_by_year.txt",
	"top_tracks.txt",
	"top_tracks_by_month.txt",
	"top_tracks_by_year.txt",
}

func createTestExport(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/export", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := afero.WriteFile(fs, "/export/Streaming_History_0.json", []byte(testHistory), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := afero.WriteFile(fs, "/export/Streaming_History_1.json", []byte(testHistoryLater), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return fs
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Input = "/export/*.json"
	cfg.Output = "/reports"
	return cfg
}

func readReport(t *testing.T, fs afero.Fs) analysis.Report {
	t.Helper()

	data, err := afero.ReadFile(fs, "/reports/report.yaml")
	if err != nil {
		t.Fatalf("reading report.yaml: %v", err)
	}
	var report analysis.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("parsing report.yaml: %v", err)
	}
	return report
}

func TestGenerateReports(t *testing.T) {
	fs := createTestExport(t)

	if err := generateReports(context.Background(), fs, testConfig(), time.Time{}, time.Time{}); err != nil {
		t.Fatalf("generateReports: %v", err)
	}

	files, err := afero.ReadDir(fs, "/reports")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	if !reflect.DeepEqual(names, reportFiles) {
		t.Fatalf("Expected files %v, got %v", reportFiles, names)
	}

	report := readReport(t, fs)
	if report.Metadata.TotalPlays != 4 {
		t.Errorf("Expected 4 plays, got %d", report.Metadata.TotalPlays)
	}
	if report.Metadata.YearsPlayed != "2021, 2023" {
		t.Errorf("Expected years played %q, got %q", "2021, 2023", report.Metadata.YearsPlayed)
	}

	if len(report.TopTracks) != 2 {
		t.Fatalf("Expected 2 top tracks, got %d", len(report.TopTracks))
	}
	songA := report.TopTracks[1]
	if songA.Name == nil || *songA.Name != "Song A" || songA.Plays != 3 || songA.Seconds != 4.5 || songA.YearsPlayed != "2021, 2023" {
		t.Errorf("Unexpected Song A stats: %+v", songA)
	}

	summary, err := afero.ReadFile(fs, "/reports/summary.txt")
	if err != nil {
		t.Fatalf("reading summary.txt: %v", err)
	}
	if !strings.Contains(string(summary), "Total listening time: 00h 00m 24s (4 plays)") {
		t.Errorf("Unexpected summary:\n%s", summary)
	}
}

func TestGenerateReports_dateRange(t *testing.T) {
	fs := createTestExport(t)
	start, end, err := parseDateRangeFromArgs([]string{"2021-03"})
	if err != nil {
		t.Fatalf("parseDateRangeFromArgs: %v", err)
	}

	if err := generateReports(context.Background(), fs, testConfig(), start, end); err != nil {
		t.Fatalf("generateReports: %v", err)
	}

	report := readReport(t, fs)
	if report.Metadata.TotalPlays != 2 {
		t.Errorf("Expected 2 plays in March 2021, got %d", report.Metadata.TotalPlays)
	}
	if len(report.Months) != 1 || report.Months[0].Month != 3 {
		t.Errorf("Expected only March 2021, got %+v", report.Months)
	}
}

func TestGenerateReports_emptyRange(t *testing.T) {
	fs := createTestExport(t)
	start, end, err := parseDateRangeFromArgs([]string{"2022"})
	if err != nil {
		t.Fatalf("parseDateRangeFromArgs: %v", err)
	}

	err = generateReports(context.Background(), fs, testConfig(), start, end)
	if !errors.Is(err, history.ErrNoInput) {
		t.Fatalf("Expected ErrNoInput, got %v", err)
	}
	if exists, _ := afero.DirExists(fs, "/reports"); exists {
		t.Errorf("Expected no output directory after a failed run")
	}
}

func TestGenerateReports_noInput(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := generateReports(context.Background(), fs, testConfig(), time.Time{}, time.Time{})
	if !errors.Is(err, history.ErrNoInput) {
		t.Fatalf("Expected ErrNoInput, got %v", err)
	}
}

func TestGenerateReports_missingTimestamp(t *testing.T) {
	fs := createTestExport(t)
	afero.WriteFile(fs, "/export/Streaming_History_2.json", []byte(`[{"ms_played": 10}]`), 0644)

	err := generateReports(context.Background(), fs, testConfig(), time.Time{}, time.Time{})
	var missing *history.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingFieldError, got %v", err)
	}
	if missing.Field != "ts" {
		t.Errorf("Expected missing ts, got %q", missing.Field)
	}
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("input", "/export/*.json")
	viper.Set("top_tracks", 3)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Input != "/export/*.json" {
		t.Errorf("Expected input from viper, got %q", cfg.Input)
	}
	if cfg.Limits.TopTracks != 3 {
		t.Errorf("Expected top_tracks 3, got %d", cfg.Limits.TopTracks)
	}
	if cfg.Output != config.Default().Output {
		t.Errorf("Expected default output, got %q", cfg.Output)
	}

	viper.Set("year_tracks", -1)
	if _, err := loadConfig(); err == nil {
		t.Errorf("Expected a validation error for a negative limit")
	}
}

func TestGenerateReports_outputSharesInputDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("/data", 0755)
	afero.WriteFile(fs, "/data/history.json", []byte(testHistory), 0644)
	afero.WriteFile(fs, "/data/notes.txt", []byte("keep me"), 0644)
	afero.WriteFile(fs, "/data/summary.txt", []byte("stale"), 0644)

	cfg := testConfig()
	cfg.Input = "/data/*.json"
	cfg.Output = "/data"
	cfg.Clean = true

	// Twice, so the second run reads an export sitting next to its own reports.
	for run := 1; run <= 2; run++ {
		if err := generateReports(context.Background(), fs, cfg, time.Time{}, time.Time{}); err != nil {
			t.Fatalf("run %d: generateReports: %v", run, err)
		}
	}

	for _, name := range []string{"/data/history.json", "/data/notes.txt"} {
		if exists, _ := afero.Exists(fs, name); !exists {
			t.Errorf("Expected %s to survive cleaning", name)
		}
	}

	summary, err := afero.ReadFile(fs, "/data/summary.txt")
	if err != nil {
		t.Fatalf("reading summary.txt: %v", err)
	}
	if !strings.Contains(string(summary), "(3 plays)") {
		t.Errorf("Expected a regenerated summary, got:\n%s", summary)
	}
}
