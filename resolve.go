package confenv

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeOption converts a raw option key into its canonical lowercase
// form. Docopt-style spellings are accepted: surrounding "-", "<", ">" and
// spaces are trimmed and interior dashes become underscores, so "--pack-size"
// and "<WITCH>" normalize to "pack_size" and "witch".
func NormalizeOption(raw string) string {
	name := strings.Trim(raw, "-<> ")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ToLower(name)
}

// EnvKey returns the environment variable name for an option under the given
// prefix, e.g. EnvKey("myapp", "foo") == "MYAPP_FOO".
func EnvKey(prefix, option string) string {
	return strings.ToUpper(strings.TrimSpace(prefix)) + "_" + strings.ToUpper(NormalizeOption(option))
}

// Resolve merges the CLI and file option mappings into a single mapping of
// environment key to string value, applying precedence CLI > file per option.
// Options absent from both inputs are left to any pre-existing environment
// variable at their key. A nil value claims its option for that tier but
// publishes nothing, so it never overwrites an existing variable. Resolve has
// no side effects; publishing the result into the environment is Load's job.
func Resolve(cliOpts, fileOpts map[string]any, prefix string) (map[string]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrEmptyPrefix
	}

	resolved := make(map[string]string, len(cliOpts)+len(fileOpts))
	claimed := make(map[string]bool, len(cliOpts)+len(fileOpts))

	// Highest priority first; each tier only claims keys the tiers before it
	// left open.
	for _, opts := range []map[string]any{cliOpts, fileOpts} {
		seen := make(map[string]string, len(opts))
		for rawName, value := range opts {
			name := NormalizeOption(rawName)
			if name == "" {
				continue
			}
			key := EnvKey(prefix, name)
			if prev, ok := seen[key]; ok {
				return nil, fmt.Errorf("%w: %q and %q both map to %s", ErrKeyCollision, prev, rawName, key)
			}
			seen[key] = rawName

			if claimed[key] {
				continue
			}
			claimed[key] = true
			if value == nil {
				continue
			}
			resolved[key] = stringify(value)
		}
	}

	return resolved, nil
}

// stringify renders a native option value into its environment wire form.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
