/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-report/internal/config"
	"github.com/ademuri/listening-report/internal/log"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "listening-report",
	Short: "Summarizes an exported listening history",
	Long: `Reads the JSON files of a streaming history export and writes listening
time totals and ranked top tracks and artists, per year, per month and of all
time, to a directory of text reports and a YAML report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.listening-report.yaml)")

	flags.StringP("input", "i", defaults.Input, "Glob matching the history JSON files")
	flags.StringP("output", "o", defaults.Output, "Directory the reports are written to")
	flags.Bool("clean", defaults.Clean, "Remove the reports of a previous run from the output directory first")
	flags.Bool("hyperlinks", defaults.Hyperlinks, "Link track names to their web page in terminals that support it")
	flags.BoolP("verbose", "v", false, "Log debug output")

	flags.Int("year_tracks", defaults.Limits.YearTracks, "Tracks listed per year")
	flags.Int("year_artists", defaults.Limits.YearArtists, "Artists listed per year")
	flags.Int("month_tracks", defaults.Limits.MonthTracks, "Tracks listed per month")
	flags.Int("month_artists", defaults.Limits.MonthArtists, "Artists listed per month")
	flags.Int("top_tracks", defaults.Limits.TopTracks, "Tracks listed of all time")
	flags.Int("top_artists", defaults.Limits.TopArtists, "Artists listed of all time")
	flags.Int("artist_tracks", defaults.Limits.ArtistTracks, "Tracks listed under each top artist")
	flags.Int("artist_track_min_plays", defaults.Limits.ArtistTrackMinPlays,
		"Plays a track needs to exceed to be listed under its artist")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		viper.BindPFlag(f.Name, f)
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".listening-report" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".listening-report")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.S().Infof("Using config file: %s", viper.ConfigFileUsed())
	}

	log.SetVerbose(viper.GetBool("verbose"))
}

// loadConfig builds the run configuration from flags and the config file.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
