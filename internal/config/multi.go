package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const DefaultLabel = "Default"

func ConfigRoot() string {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "nataliefeed")
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nataliefeed")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nataliefeed")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil || label == "" {
		return "", ErrNoConfig
	}

	return ConfigPathByLabel(label)
}

func ConfigPathByLabel(label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", errors.New("label cannot be empty")
	}

	path := filepath.Join(ConfigsDir(), label+".yaml")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return path, nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		label := strings.TrimSuffix(name, ".yaml")
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if _, err := ConfigPathByLabel(label); err != nil {
		return err
	}

	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

// CreateConfig writes cfg as a new profile and returns its path.
func CreateConfig(label string, cfg *Config) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", errors.New("label cannot be empty")
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := filepath.Join(ConfigsDir(), label+".yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("a config named %q already exists", label)
	}

	if err := SaveYAML(cfg, path); err != nil {
		return "", fmt.Errorf("failed to save YAML: %w", err)
	}

	return path, nil
}

func RenameConfig(oldLabel, newLabel string) error {
	if strings.TrimSpace(newLabel) == "" {
		return errors.New("new label cannot be empty")
	}

	oldPath, err := ConfigPathByLabel(oldLabel)
	if err != nil {
		return err
	}

	newPath := filepath.Join(ConfigsDir(), newLabel+".yaml")
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	active, _ := CurrentLabel()
	if active == oldLabel {
		return os.WriteFile(CurrentLabelFile(), []byte(newLabel), 0644)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active one falls back to
// Default; Default itself can never be removed.
func RemoveConfig(label string) (fellBack bool, err error) {
	if label == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}

	path, err := ConfigPathByLabel(label)
	if err != nil {
		return false, err
	}

	active, _ := CurrentLabel()
	if active == label {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		fellBack = true
	}

	return fellBack, os.Remove(path)
}
