package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteAnimation writes an animation to a YAML file
func WriteAnimation(anim *Animation, path string) error {
	data, err := yaml.Marshal(anim)
	if err != nil {
		return fmt.Errorf("director: encode animation: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ReadAnimation reads and validates an animation YAML file
func ReadAnimation(path string) (*Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var anim Animation
	if err := yaml.Unmarshal(data, &anim); err != nil {
		return nil, fmt.Errorf("director: parse %s: %w", path, err)
	}

	if err := anim.Validate(); err != nil {
		return nil, fmt.Errorf("director: %s: %w", path, err)
	}

	return &anim, nil
}
