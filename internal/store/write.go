package store

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Write renders a report into memory and writes it to name. Nothing is
// written if render fails.
func (s *Store) Write(name string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	if err := s.fs.WriteFile(s.path(name), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Store) WriteYAML(name string, v any) error {
	return s.Write(name, func(w io.Writer) error {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	})
}
