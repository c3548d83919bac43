// Package config loads the site configuration: data sources, rule tables,
// output settings, and logging.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/datasource"
	"git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/rules"
)

// Config is the root of the site configuration file.
type Config struct {
	Sources     []SourceConfig `yaml:"sources"`
	Rules       RulesConfig    `yaml:"rules"`
	Output      OutputConfig   `yaml:"output"`
	Logging     LoggingConfig  `yaml:"logging"`
	Parallelism int            `yaml:"parallelism"`
}

// SourceConfig selects and configures one data source adapter.
type SourceConfig struct {
	Kind    string             `yaml:"kind"`
	Options datasource.Options `yaml:"options"`
}

// RulesConfig holds the declarative rule tables.
type RulesConfig struct {
	Compile []CompileRuleConfig `yaml:"compile"`
	Route   []RouteRuleConfig   `yaml:"route"`
	Layouts []LayoutRuleConfig  `yaml:"layouts"`
}

// Empty reports whether no rules are configured at all.
func (r RulesConfig) Empty() bool {
	return len(r.Compile) == 0 && len(r.Route) == 0 && len(r.Layouts) == 0
}

// CompileRuleConfig declares one compilation rule.
type CompileRuleConfig struct {
	Pattern string       `yaml:"pattern"`
	Rep     string       `yaml:"rep,omitempty"`
	Steps   []StepConfig `yaml:"steps"`
}

// StepConfig declares one step: exactly one of filter, layout, or snapshot.
type StepConfig struct {
	Filter   string         `yaml:"filter,omitempty"`
	Args     map[string]any `yaml:"args,omitempty"`
	Layout   string         `yaml:"layout,omitempty"`
	Snapshot string         `yaml:"snapshot,omitempty"`
}

// RouteRuleConfig declares one routing rule.
type RouteRuleConfig struct {
	Pattern string `yaml:"pattern"`
	Rep     string `yaml:"rep,omitempty"`
	Route   string `yaml:"route"`
}

// LayoutRuleConfig binds layouts matching a pattern to a filter.
type LayoutRuleConfig struct {
	Pattern string         `yaml:"pattern"`
	Filter  string         `yaml:"filter"`
	Args    map[string]any `yaml:"args,omitempty"`
}

// OutputConfig controls where compiled content is written.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Cache string `yaml:"cache,omitempty"`
}

// Load reads and validates the configuration file, applying environment
// overrides afterwards.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "read configuration file").
			WithContext("path", path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "parse configuration file").
			WithContext("path", path)
	}

	if cfg.Rules.Empty() {
		return nil, errors.NoRulesFileFound()
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./site"
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// BuildRuleSet converts the declarative rule tables into the resolver's
// form, preserving declaration order.
func (c *Config) BuildRuleSet() (*rules.Set, error) {
	set := &rules.Set{}

	for _, rc := range c.Rules.Compile {
		pattern, err := rules.NewPattern(rc.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "invalid compile rule pattern").
				WithContext("pattern", rc.Pattern)
		}
		steps := make([]rules.Step, 0, len(rc.Steps))
		for _, sc := range rc.Steps {
			step, err := sc.toStep()
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		}
		set.Compilation = append(set.Compilation, rules.CompilationRule{
			Pattern: pattern,
			RepName: rc.Rep,
			Steps:   steps,
		})
	}

	for _, rc := range c.Rules.Route {
		pattern, err := rules.NewPattern(rc.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "invalid route rule pattern").
				WithContext("pattern", rc.Pattern)
		}
		set.Routing = append(set.Routing, rules.RoutingRule{
			Pattern: pattern,
			RepName: rc.Rep,
			Route:   rc.Route,
		})
	}

	for _, rc := range c.Rules.Layouts {
		pattern, err := rules.NewPattern(rc.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "invalid layout rule pattern").
				WithContext("pattern", rc.Pattern)
		}
		set.Layouts = append(set.Layouts, rules.LayoutRule{
			Pattern:    pattern,
			FilterName: rc.Filter,
			FilterArgs: rc.Args,
		})
	}
	return set, nil
}

func (sc StepConfig) toStep() (rules.Step, error) {
	declared := 0
	if sc.Filter != "" {
		declared++
	}
	if sc.Layout != "" {
		declared++
	}
	if sc.Snapshot != "" {
		declared++
	}
	if declared != 1 {
		return rules.Step{}, errors.Internal(
			"rule step must declare exactly one of filter, layout, or snapshot")
	}

	switch {
	case sc.Filter != "":
		return rules.FilterStep(sc.Filter, sc.Args), nil
	case sc.Layout != "":
		return rules.LayoutStep(sc.Layout), nil
	default:
		return rules.SnapshotStep(sc.Snapshot), nil
	}
}

// BuildSources instantiates the configured data sources from the registry.
func (c *Config) BuildSources(registry *datasource.Registry) ([]datasource.DataSource, error) {
	if registry == nil {
		registry = datasource.DefaultRegistry()
	}
	sources := make([]datasource.DataSource, 0, len(c.Sources))
	for _, sc := range c.Sources {
		src, err := registry.Create(sc.Kind, sc.Options)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
