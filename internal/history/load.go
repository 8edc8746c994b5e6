package history

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/ademuri/listening-report/internal/log"
)

// Load reads every file matching pattern, in lexical order, and normalizes
// the records they contain.
func Load(fs afero.Fs, pattern string) ([]Event, error) {
	files, err := afero.Glob(fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files match %q", ErrNoInput, pattern)
	}
	sort.Strings(files)
	log.S().Infof("Found %d history files matching %q", len(files), pattern)

	units := make([]json.RawMessage, 0, len(files))
	for _, file := range files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		log.S().Debugf("Read %s (%d bytes)", file, len(data))
		units = append(units, data)
	}

	events, err := Normalize(units)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: files matching %q contain no records", ErrNoInput, pattern)
	}

	log.S().Infof("Loaded %d listening events", len(events))
	return events, nil
}
