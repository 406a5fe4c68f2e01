package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working directory or
// its parent. Variables already set are not overridden. It returns the file loaded,
// or "" when there is none.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", err
		}
		return envFile, nil
	}
	return "", nil
}
