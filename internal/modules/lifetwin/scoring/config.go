package scoring

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

//go:embed score_config.yaml
var scoreConfigFS embed.FS

// Component is one weighted input of a score. Exactly one of Field and MetaKey is set.
type Component struct {
	Source  lifelog.ActivityType   `yaml:"source"`
	Field   lifelog.AggregateField `yaml:"field"`
	MetaKey string                 `yaml:"meta_key"`
	Weight  float64                `yaml:"weight"`
	Scale   float64                `yaml:"scale"`
	Boolean bool                   `yaml:"boolean"`
}

// ScoreConfig describes one life score: its window and its components.
type ScoreConfig struct {
	Name       lifelog.ScoreName `yaml:"name"`
	WindowDays int               `yaml:"window_days"`
	Components []Component       `yaml:"components"`
}

// Table holds one ScoreConfig per life score in lifelog.ScoreNames order. It is never
// mutated after load.
type Table struct {
	scores []ScoreConfig
}

type yamlTable struct {
	Version int           `yaml:"version"`
	Scores  []ScoreConfig `yaml:"scores"`
}

var fallbackScores = []ScoreConfig{
	{
		Name:       lifelog.ScoreEnergy,
		WindowDays: 7,
		Components: []Component{
			{Source: lifelog.ActivitySleep, Field: lifelog.FieldAverage, Weight: 0.70, Scale: 9.0},
			{Source: lifelog.ActivityHealth, MetaKey: "has_exercise", Weight: 0.30, Boolean: true},
		},
	},
	{
		Name:       lifelog.ScoreMental,
		WindowDays: 7,
		Components: []Component{
			{Source: lifelog.ActivityMood, Field: lifelog.FieldAverage, Weight: 0.70, Scale: 5.0},
			{Source: lifelog.ActivitySpend, MetaKey: "impulse_ratio", Weight: -0.30, Scale: 1.0},
		},
	},
	{
		Name:       lifelog.ScoreFocus,
		WindowDays: 7,
		Components: []Component{
			{Source: lifelog.ActivityStudy, Field: lifelog.FieldTotal, Weight: 0.55, Scale: 8.0},
			{Source: lifelog.ActivityStudy, MetaKey: "concentration_avg", Weight: 0.45, Scale: 5.0},
		},
	},
	{
		Name:       lifelog.ScoreGoalProgress,
		WindowDays: 30,
		Components: []Component{
			{Source: lifelog.ActivityStudy, Field: lifelog.FieldTotal, Weight: 0.40, Scale: 8.0},
			{Source: lifelog.ActivityHealth, MetaKey: "has_exercise", Weight: 0.35, Boolean: true},
			{Source: lifelog.ActivitySpend, MetaKey: "savings_ratio", Weight: 0.25, Scale: 1.0},
		},
	},
}

// FallbackTable is the compiled-in table, identical to the embedded document.
func FallbackTable() Table {
	return newTable(fallbackScores)
}

// LoadTable reads the table from path, or from the embedded document when path is
// empty. Any read or validation failure is logged and the fallback table is returned.
func LoadTable(path string, log *logger.Logger) Table {
	data, err := readScoreConfig(path)
	if err == nil {
		var t Table
		if t, err = ParseTable(data); err == nil {
			return t
		}
	}
	if log != nil {
		log.Warn("score config load failed; using fallback", "path", path, "error", err)
	}
	return FallbackTable()
}

func readScoreConfig(path string) ([]byte, error) {
	if p := strings.TrimSpace(path); p != "" {
		return os.ReadFile(p)
	}
	return scoreConfigFS.ReadFile("score_config.yaml")
}

// ParseTable decodes and validates a YAML score table.
func ParseTable(data []byte) (Table, error) {
	var doc yamlTable
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Table{}, err
	}
	if err := validateScores(doc.Scores); err != nil {
		return Table{}, err
	}
	return newTable(doc.Scores), nil
}

func validateScores(scores []ScoreConfig) error {
	if len(scores) == 0 {
		return errors.New("no scores defined")
	}
	byName := map[lifelog.ScoreName]bool{}
	for _, s := range scores {
		if byName[s.Name] {
			return fmt.Errorf("duplicate score: %s", s.Name)
		}
		byName[s.Name] = true
		if s.WindowDays < 1 {
			return fmt.Errorf("score %s: window_days must be >= 1", s.Name)
		}
		if len(s.Components) == 0 {
			return fmt.Errorf("score %s: no components", s.Name)
		}
		for i, c := range s.Components {
			if _, ok := lifelog.ParseActivityType(string(c.Source)); !ok {
				return fmt.Errorf("score %s component %d: unknown source %q", s.Name, i, c.Source)
			}
			hasField := c.Field != ""
			hasMeta := strings.TrimSpace(c.MetaKey) != ""
			if hasField == hasMeta {
				return fmt.Errorf("score %s component %d: set exactly one of field and meta_key", s.Name, i)
			}
			if hasField {
				if _, ok := (&lifelog.DailyAggregate{}).Field(c.Field); !ok {
					return fmt.Errorf("score %s component %d: unknown field %q", s.Name, i, c.Field)
				}
			}
			if !c.Boolean && c.Scale <= 0 {
				return fmt.Errorf("score %s component %d: scale must be > 0", s.Name, i)
			}
		}
	}
	for _, name := range lifelog.ScoreNames {
		if !byName[name] {
			return fmt.Errorf("missing score: %s", name)
		}
	}
	return nil
}

func newTable(scores []ScoreConfig) Table {
	out := make([]ScoreConfig, 0, len(lifelog.ScoreNames))
	for _, name := range lifelog.ScoreNames {
		for _, s := range scores {
			if s.Name != name {
				continue
			}
			comps := make([]Component, len(s.Components))
			copy(comps, s.Components)
			s.Components = comps
			out = append(out, s)
			break
		}
	}
	return Table{scores: out}
}

// Scores returns a copy of the configured scores in canonical order.
func (t Table) Scores() []ScoreConfig {
	out := make([]ScoreConfig, len(t.scores))
	for i, s := range t.scores {
		comps := make([]Component, len(s.Components))
		copy(comps, s.Components)
		s.Components = comps
		out[i] = s
	}
	return out
}

// Get returns the config of one score.
func (t Table) Get(name lifelog.ScoreName) (ScoreConfig, bool) {
	for _, s := range t.Scores() {
		if s.Name == name {
			return s, true
		}
	}
	return ScoreConfig{}, false
}

// MaxWindow is the longest window across all scores.
func (t Table) MaxWindow() int {
	maxW := 1
	for _, s := range t.scores {
		if s.WindowDays > maxW {
			maxW = s.WindowDays
		}
	}
	return maxW
}
