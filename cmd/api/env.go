package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// dotEnvFiles are read in order. A variable keeps the first value it gets,
// and the process environment beats every file.
var dotEnvFiles = []string{".env.local", ".env"}

// loadDotEnv loads each file that exists and skips the rest.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", f, err)
	}
	return nil
}
