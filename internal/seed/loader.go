package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Fixture pairs a demo job with its assessment schema, both defined in one
// YAML file under the fixtures directory.
type Fixture struct {
	Job        models.Job         `yaml:"job"`
	Assessment *models.Assessment `yaml:"assessment"`
}

// LoadFixtures parses every .yaml/.yml file in dir into fixtures, sorted by
// file name so demo job ids are stable across runs
func LoadFixtures(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures directory: %w", err)
	}

	var fixtures []*Fixture
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
		}

		var f Fixture
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse fixture %s: %w", name, err)
		}

		if err := validateFixture(&f, name); err != nil {
			return nil, err
		}

		if f.Assessment != nil {
			f.Assessment.JobID = f.Job.ID
		}
		fixtures = append(fixtures, &f)
	}

	return fixtures, nil
}

// validateFixture rejects fixtures that would seed an inconsistent store
func validateFixture(f *Fixture, name string) error {
	if f.Job.ID == 0 {
		return fmt.Errorf("fixture %s: job id is required", name)
	}
	if f.Job.Title == "" {
		return fmt.Errorf("fixture %s: job title is required", name)
	}

	if f.Assessment == nil {
		return nil
	}
	if f.Assessment.Sections == nil {
		return fmt.Errorf("fixture %s: assessment must contain sections", name)
	}

	seen := make(map[int]bool)
	for _, s := range f.Assessment.Sections {
		for _, q := range s.Questions {
			if q.ID == 0 {
				return fmt.Errorf("fixture %s: question %q has no id", name, q.Text)
			}
			if seen[q.ID] {
				return fmt.Errorf("fixture %s: duplicate question id %d", name, q.ID)
			}
			seen[q.ID] = true
			if !q.Type.IsValid() {
				return fmt.Errorf("fixture %s: question %d has unknown type %q", name, q.ID, q.Type)
			}
		}
	}

	return nil
}
