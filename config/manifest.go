package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest lists the filing files to ingest in one run.
type Manifest struct {
	Jobs []JobSpec `yaml:"jobs"`
}

// JobSpec describes one filing file.
type JobSpec struct {
	Jurisdiction string `yaml:"jurisdiction"`
	Cycle        int    `yaml:"cycle"`
	RaceType     string `yaml:"race_type"`
	Source       string `yaml:"source"`
	ElectionDate string `yaml:"election_date,omitempty"` // YYYY-MM-DD, computed when empty
}

// Date parses ElectionDate, returning the zero time when it is empty.
func (j JobSpec) Date() (time.Time, error) {
	if j.ElectionDate == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", j.ElectionDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid election date [%s], error %w", j.ElectionDate, err)
	}
	return d, nil
}

// LoadManifest reads and checks a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest [%s], error %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest [%s], error %w", path, err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest [%s] has no jobs", path)
	}
	for i := range m.Jobs {
		j := &m.Jobs[i]
		j.Jurisdiction = strings.ToLower(strings.TrimSpace(j.Jurisdiction))
		if j.RaceType == "" {
			j.RaceType = "General"
		}
		if j.Jurisdiction == "" || j.Source == "" || j.Cycle == 0 {
			return nil, fmt.Errorf("job %d of manifest [%s] needs jurisdiction, cycle and source", i+1, path)
		}
		if _, err := j.Date(); err != nil {
			return nil, fmt.Errorf("job %d of manifest [%s]: %w", i+1, path, err)
		}
	}
	return &m, nil
}
