package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads KEY=VALUE pairs from the given file into the process
// environment. Variables that are already set keep their values.
func LoadEnvFile(filePath string) error {
	if err := godotenv.Load(filePath); err != nil {
		return fmt.Errorf("failed to read env file '%s': %w", filePath, err)
	}
	return nil
}
