package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/nataliefeed/internal/providers/natalie"
)

// isolate points the config root and working directory at a temp dir so
// neither the user's profiles nor a stray .env leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"URL", "LINK_PREFIX", "USER_AGENT", "MODE", "OUTPUT", "STATIC_DIR", "TEMPLATES_DIR", "PAGE_TEMPLATE", "DEBUG", "CLOUDFLARE_BYPASS", "PROGRESS", "FUTURE_TOLERANCE_DAYS"} {
		t.Setenv(envPrefix+k, "")
		_ = os.Unsetenv(envPrefix + k)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return dir
}

func TestLoadMerged_Defaults(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if used == "" {
		t.Error("expected a description of the config source")
	}
	if cfg.URL != natalie.DefaultURL || cfg.Mode != "json" || cfg.Output != "output" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMerged_Precedence(t *testing.T) {
	dir := isolate(t)

	profile := DefaultConfig()
	profile.Mode = "html"
	profile.Output = "from-profile"
	profile.StaticDir = "assets"
	if _, err := CreateConfig("Work", profile); err != nil {
		t.Fatal(err)
	}
	if err := SwitchConfig("Work"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NATALIEFEED_OUTPUT=from-env\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := LoadMerged(Options{StaticDir: "from-flag"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if used != filepath.Join(ConfigsDir(), "Work.yaml") {
		t.Errorf("used = %q", used)
	}
	if cfg.Mode != "html" {
		t.Errorf("mode = %q, want profile value", cfg.Mode)
	}
	if cfg.Output != "from-env" {
		t.Errorf("output = %q, want env value", cfg.Output)
	}
	if cfg.StaticDir != "from-flag" {
		t.Errorf("static_dir = %q, want flag value", cfg.StaticDir)
	}
}

func TestLoadMerged_IgnoreConfig(t *testing.T) {
	isolate(t)

	profile := DefaultConfig()
	profile.Mode = "html"
	if _, err := CreateConfig("Default", profile); err != nil {
		t.Fatal(err)
	}
	if err := SwitchConfig("Default"); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadMerged(Options{IgnoreConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "json" {
		t.Errorf("mode = %q, profile should be ignored", cfg.Mode)
	}
}

func TestLoadMerged_BadEnvBool(t *testing.T) {
	isolate(t)
	t.Setenv(envPrefix+"DEBUG", "sometimes")

	if _, _, err := LoadMerged(Options{}); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}

func TestProfiles(t *testing.T) {
	isolate(t)

	if _, err := CreateConfig("Default", DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateConfig("Default", DefaultConfig()); err == nil {
		t.Error("expected duplicate label to fail")
	}
	if _, err := CreateConfig("Alt", DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	if err := SwitchConfig("Missing"); err == nil {
		t.Error("switching to a missing profile should fail")
	}
	if err := SwitchConfig("Alt"); err != nil {
		t.Fatal(err)
	}

	if err := RenameConfig("Alt", "Other"); err != nil {
		t.Fatal(err)
	}
	if label, _ := CurrentLabel(); label != "Other" {
		t.Errorf("active label = %q after rename", label)
	}

	list, err := ListConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Label != "Default" || !list[1].Active {
		t.Errorf("unexpected list: %+v", list)
	}

	if _, err := RemoveConfig("Default"); err == nil {
		t.Error("Default must not be removable")
	}

	fellBack, err := RemoveConfig("Other")
	if err != nil {
		t.Fatal(err)
	}
	if !fellBack {
		t.Error("removing the active profile should fall back to Default")
	}
	if label, _ := CurrentLabel(); label != "Default" {
		t.Errorf("active label = %q", label)
	}
}

func TestLoadMerged_EnvSourceSettings(t *testing.T) {
	isolate(t)
	t.Setenv(envPrefix+"LINK_PREFIX", "https://natalie.mu/music/news/")
	t.Setenv(envPrefix+"FUTURE_TOLERANCE_DAYS", "3")

	cfg, _, err := LoadMerged(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LinkPrefix != "https://natalie.mu/music/news/" {
		t.Errorf("LinkPrefix = %q", cfg.LinkPrefix)
	}
	if cfg.FutureToleranceDays != 3 {
		t.Errorf("FutureToleranceDays = %d", cfg.FutureToleranceDays)
	}
}

func TestLoadMerged_BadEnvInt(t *testing.T) {
	isolate(t)
	t.Setenv(envPrefix+"FUTURE_TOLERANCE_DAYS", "a week")

	if _, _, err := LoadMerged(Options{}); err == nil {
		t.Fatal("expected an error for a non-numeric tolerance")
	}
}
