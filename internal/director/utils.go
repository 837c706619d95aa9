package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GenerateAnimationPath creates a timestamped animation filename inside dir
func GenerateAnimationPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("animation_%s.yaml", timestamp))
}

// FindLatestAnimation finds the most recent animation file in dir
func FindLatestAnimation(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read animations directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var animations []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		animations = append(animations, candidate{filepath.Join(dir, name), info.ModTime()})
	}

	if len(animations) == 0 {
		return "", fmt.Errorf("no animation files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(animations, func(i, j int) bool {
		return animations[i].mod.After(animations[j].mod)
	})

	return animations[0].path, nil
}
