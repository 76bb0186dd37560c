package confenv

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// loadOptionFile parses a YAML file of option name -> value pairs into the
// same shape as a CLI option mapping.
func loadOptionFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	opts := make(map[string]any)
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return opts, nil
}

// loadEnvFile loads a dotenv file into the process environment. Variables
// already set keep their values, so the dotenv content behaves as part of the
// environment tier rather than a new precedence level.
func loadEnvFile(path string) error {
	return godotenv.Load(path)
}
