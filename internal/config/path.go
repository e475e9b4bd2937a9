package config

import (
	"os"
	"path/filepath"
	"runtime"
)

func Dir() string {
	return dirFrom(os.Getenv)
}

func dirFrom(getenv func(string) string) string {
	if override := getenv(envConfigDir); override != "" {
		return override
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".apiglass"
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "apiglass")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "apiglass")
	default:
		return filepath.Join(home, ".config", "apiglass")
	}
}
