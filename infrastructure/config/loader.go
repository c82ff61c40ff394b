package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// envPattern matches ${VAR} and ${VAR:-default} references.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)

// Load reads a YAML configuration file, expands ${VAR} environment
// references, and unmarshals it over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := expandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// expandEnv replaces ${VAR} with the variable's value and ${VAR:-dflt}
// with the value or the default when the variable is unset.
func expandEnv(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		inner := match[2 : len(match)-1]
		name, dflt, hasDefault := strings.Cut(inner, ":-")

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if hasDefault {
			return dflt
		}
		return ""
	})
}
