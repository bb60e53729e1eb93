package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	HomePath     string
	DBPath       string
	PhotosPath   string
	NotesPath    string
	AssetsPath   string
	EventLogPath string
}

func New(homePath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	return Config{
		HomePath:     homePath,
		DBPath:       filepath.Join(homePath, ".scrub", "scrub.db"),
		PhotosPath:   filepath.Join(homePath, "photos"),
		NotesPath:    filepath.Join(homePath, "sessions"),
		AssetsPath:   filepath.Join(homePath, "assets", "visions"),
		EventLogPath: filepath.Join(homePath, ".scrub", "events.log"),
	}, nil
}
