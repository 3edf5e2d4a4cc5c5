package docwalk

import (
	"os"
	"regexp"
	"strings"

	"github.com/nobl9/govy/pkg/govy"
	"github.com/nobl9/govy/pkg/rules"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/docwalk/internal/docstring"
)

// Config controls a Loader.
type Config struct {
	// Filters is an ordered chain of signed regular expressions applied to
	// member names below the root: a matching pattern excludes the name, a
	// leading "!" re-includes it, later patterns override earlier ones.
	Filters []string `yaml:"filters" json:"filters,omitempty"`
	// DocstringStyle selects the docstring parsing style.
	DocstringStyle string `yaml:"docstring_style" json:"docstring_style"`
	// DocstringOptions is forwarded verbatim to the style parser.
	DocstringOptions map[string]any `yaml:"docstring_options" json:"docstring_options,omitempty"`
	// InheritedMembers selects members inherited from ancestor classes.
	InheritedMembers bool `yaml:"inherited_members" json:"inherited_members"`
	// SpecialNamePattern matches reserved special-method names whose
	// mechanically inherited docstrings get blanked.
	SpecialNamePattern string `yaml:"special_name_pattern" json:"special_name_pattern,omitempty"`
}

const defaultSpecialNamePattern = `^__(\w+)__$`

func DefaultConfig() Config {
	return Config{
		DocstringStyle:     docstring.StyleGoogle,
		SpecialNamePattern: defaultSpecialNamePattern,
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := configValidator.Validate(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

var configValidator = govy.New(
	govy.For(func(c Config) string { return c.DocstringStyle }).
		WithName("docstring_style").
		Rules(rules.OneOf(docstring.Styles()...)),
	govy.For(func(c Config) string { return c.SpecialNamePattern }).
		WithName("special_name_pattern").
		Rules(compilablePattern(false)),
	govy.ForSlice(func(c Config) []string { return c.Filters }).
		WithName("filters").
		RulesForEach(compilablePattern(true)),
).WithName("Config")

// compilablePattern checks that a pattern compiles, optionally allowing the
// "!" negation prefix of filter chains.
func compilablePattern(signed bool) govy.Rule[string] {
	return govy.NewRule(func(pattern string) error {
		if signed {
			pattern = strings.TrimPrefix(pattern, "!")
		}
		_, err := regexp.Compile(pattern)
		return err
	})
}
