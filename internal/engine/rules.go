package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/tartampluch/go-reldate/internal/reldate"
	"gopkg.in/yaml.v3"
)

// RuleSet is the content of a rules file: one holiday calendar and the
// named observance rules evaluated against it.
type RuleSet struct {
	Calendar CalendarSpec `yaml:"calendar" toml:"calendar"`
	Rules    []Rule       `yaml:"rules" toml:"rules"`
}

// CalendarSpec declares the holiday calendar of a rules file. Holidays come
// from an optional preset, the inline list and an optional iCalendar source,
// in that order.
type CalendarSpec struct {
	Key      string        `yaml:"key" toml:"key"`
	Workweek string        `yaml:"workweek" toml:"workweek"`
	Preset   string        `yaml:"preset" toml:"preset"`
	Holidays []HolidaySpec `yaml:"holidays" toml:"holidays"`
	Source   *SourceSpec   `yaml:"source" toml:"source"`
}

// HolidaySpec is an inline holiday. Until, when set, makes it a multi-day
// range ending with that day.
type HolidaySpec struct {
	Date        string `yaml:"date" toml:"date"`
	Until       string `yaml:"until" toml:"until"`
	Description string `yaml:"description" toml:"description"`
}

// SourceSpec locates an iCalendar holiday feed.
type SourceSpec struct {
	Mode     string `yaml:"mode" toml:"mode"` // config.SourceModeLocal or config.SourceModeWeb
	Path     string `yaml:"path" toml:"path"`
	URL      string `yaml:"url" toml:"url"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"` // falls back to the OS keyring
}

// Rule is a named relative-date expression evaluated once per anchor year.
type Rule struct {
	Name       string `yaml:"name" toml:"name"`
	Expression string `yaml:"expression" toml:"expression"`
	Roll       string `yaml:"roll" toml:"roll"`
	Summary    string `yaml:"summary" toml:"summary"`
}

// compiledRule pairs a rule with its parsed pipeline.
type compiledRule struct {
	Rule
	pipeline *reldate.RelativeDate
}

// LoadRules reads and validates a rules file. The format is chosen by the
// file extension: .yaml/.yml or .toml.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRulesRead, err)
	}
	rs, err := ParseRules(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	slog.Debug(config.MsgRulesLoaded,
		config.LogKeyComponent, config.CompRules,
		config.LogKeyFile, path,
		config.LogKeyCount, len(rs.Rules))
	return rs, nil
}

// ParseRules decodes and validates rules in the given format, named by its
// file extension.
func ParseRules(data []byte, format string) (*RuleSet, error) {
	var rs RuleSet
	switch strings.ToLower(format) {
	case config.ExtYAML, config.ExtYML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&rs); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRulesDecode, err)
		}
	case config.ExtTOML:
		md, err := toml.Decode(string(data), &rs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRulesDecode, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", config.ErrRulesDecode, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrRulesFormat, format)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate checks every rule: a name, a known roll convention and an
// expression that parses.
func (rs *RuleSet) Validate() error {
	_, err := rs.compile()
	return err
}

func (rs *RuleSet) compile() ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rs.Rules))
	for i, r := range rs.Rules {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w #%d: %s", ErrRuleInvalid, i+1, config.ErrRuleName)
		}
		switch r.Roll {
		case "", config.RollNone, config.RollFollowing, config.RollPreceding:
		default:
			return nil, fmt.Errorf("%w %q: %s %q", ErrRuleInvalid, r.Name, config.ErrRollUnknown, r.Roll)
		}
		rd, err := reldate.Parse(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrRuleInvalid, r.Name, err)
		}
		out = append(out, compiledRule{Rule: r, pipeline: rd})
	}
	return out, nil
}
