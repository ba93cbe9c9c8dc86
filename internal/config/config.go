package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/brogergvhs/nataliefeed/internal/providers/natalie"
	"github.com/brogergvhs/nataliefeed/internal/util"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "NATALIEFEED_"

type Config struct {
	URL        string `yaml:"url"`
	LinkPrefix string `yaml:"link_prefix"`
	UserAgent  string `yaml:"user_agent"`

	Mode         string `yaml:"mode"`
	Output       string `yaml:"output"`
	StaticDir    string `yaml:"static_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	PageTemplate string `yaml:"page_template"`

	FutureToleranceDays int  `yaml:"future_tolerance_days"`
	CloudflareBypass    bool `yaml:"cloudflare_bypass"`
	Progress            bool `yaml:"progress"`
	Debug               bool `yaml:"debug"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	URL              string
	UserAgent        string
	Mode             string
	Output           string
	StaticDir        string
	TemplatesDir     string
	PageTemplate     string
	CloudflareBypass bool
}

func DefaultConfig() *Config {
	return &Config{
		URL:                 natalie.DefaultURL,
		LinkPrefix:          natalie.DefaultLinkPrefix,
		UserAgent:           util.DefaultUserAgent,
		Mode:                "json",
		Output:              "output",
		StaticDir:           "static",
		TemplatesDir:        "templates",
		PageTemplate:        "",
		FutureToleranceDays: 7,
		CloudflareBypass:    false,
		Progress:            true,
		Debug:               false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the run configuration: defaults, then the active
// profile, then NATALIEFEED_* variables (a .env file in the working
// directory is read first if present), then CLI options.
func LoadMerged(opts Options) (*Config, string, error) {
	var (
		cfg  *Config
		used string
	)

	if opts.IgnoreConfig {
		cfg, used = DefaultConfig(), "(ignored config)"
	} else {
		activePath, err := ActiveConfigPath()
		switch {
		case errors.Is(err, ErrNoConfig) || activePath == "":
			cfg, used = DefaultConfig(), "(default config in memory)\nRun `nataliefeed config init` to create an actual config\n"
		case err != nil:
			return nil, "", err
		default:
			cfg, err = loadYAML(activePath)
			if err != nil {
				return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
			}
			used = activePath
		}

		if err := mergeEnv(cfg); err != nil {
			return nil, "", err
		}
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, used, nil
}

func mergeEnv(c *Config) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
			*dst = v
		}
	}

	str("URL", &c.URL)
	str("LINK_PREFIX", &c.LinkPrefix)
	str("USER_AGENT", &c.UserAgent)
	str("MODE", &c.Mode)
	str("OUTPUT", &c.Output)
	str("STATIC_DIR", &c.StaticDir)
	str("TEMPLATES_DIR", &c.TemplatesDir)
	str("PAGE_TEMPLATE", &c.PageTemplate)

	if v := strings.TrimSpace(os.Getenv(envPrefix + "FUTURE_TOLERANCE_DAYS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sFUTURE_TOLERANCE_DAYS: %w", envPrefix, err)
		}
		c.FutureToleranceDays = n
	}

	for key, dst := range map[string]*bool{
		"DEBUG":             &c.Debug,
		"CLOUDFLARE_BYPASS": &c.CloudflareBypass,
		"PROGRESS":          &c.Progress,
	} {
		if v := os.Getenv(envPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = b
		}
	}

	return nil
}

func mergeConfig(c *Config, o Options) {
	if o.URL != "" {
		c.URL = o.URL
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.StaticDir != "" {
		c.StaticDir = o.StaticDir
	}
	if o.TemplatesDir != "" {
		c.TemplatesDir = o.TemplatesDir
	}
	if o.PageTemplate != "" {
		c.PageTemplate = o.PageTemplate
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.Debug {
		c.Debug = true
	}
}

func normalizeDefaults(c *Config) {
	if c.URL == "" {
		c.URL = natalie.DefaultURL
	}
	if c.LinkPrefix == "" {
		c.LinkPrefix = natalie.DefaultLinkPrefix
	}
	if c.Mode == "" {
		c.Mode = "json"
	}
	if c.Output == "" {
		c.Output = "output"
	}
	if c.FutureToleranceDays <= 0 {
		c.FutureToleranceDays = 7
	}
}

func (c *Config) Print() {
	fmt.Printf(" -url: %s\n", c.URL)
	fmt.Printf(" -mode: %s\n", c.Mode)
	fmt.Printf(" -output: %s\n", c.Output)
	if c.StaticDir != "" {
		fmt.Printf(" -static_dir: %s\n", c.StaticDir)
	}
	if c.TemplatesDir != "" {
		fmt.Printf(" -templates_dir: %s\n", c.TemplatesDir)
	}
	if c.PageTemplate != "" {
		fmt.Printf(" -page_template: %s\n", c.PageTemplate)
	}
	if c.UserAgent != util.DefaultUserAgent {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.LinkPrefix != natalie.DefaultLinkPrefix {
		fmt.Printf(" -link_prefix: %s\n", c.LinkPrefix)
	}
	fmt.Printf(" -future_tolerance_days: %d\n", c.FutureToleranceDays)
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if !c.Progress {
		fmt.Printf(" -progress: %t\n", c.Progress)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
}
