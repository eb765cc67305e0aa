// Package yaml loads and saves [korekta.Config] as YAML files.
//
// A value consisting solely of a ${VAR} reference is replaced by that
// environment variable, so API keys can stay out of the file. Any other
// value, including one containing a literal $, is taken as written:
//
//	style: professional
//	providers:
//	  anthropic:
//	    api_key: ${ANTHROPIC_API_KEY}
//	    model: claude-3-7-sonnet-latest
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/korekta"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Style          string                    `yaml:"style,omitempty"`
	Streaming      *bool                     `yaml:"streaming,omitempty"`
	HighlightDiffs *bool                     `yaml:"highlight_diffs,omitempty"`
	Providers      map[string]providerConfig `yaml:"providers,omitempty"`
}

type providerConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// Option configures [Load] and [Parse].
type Option func(*options)

type options struct {
	keepReferences bool
}

// KeepReferences leaves ${VAR} values unexpanded, so a config can be
// loaded and saved again without writing secrets into it.
func KeepReferences() Option {
	return func(o *options) { o.keepReferences = true }
}

// Load reads the configuration at path and merges it onto
// [korekta.DefaultConfig]. A missing file yields the defaults.
func Load(path string, opts ...Option) (korekta.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return korekta.DefaultConfig(), nil
	}
	if err != nil {
		return korekta.Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, opts...)
}

// Parse unmarshals data, expands ${VAR} values and merges the result onto
// [korekta.DefaultConfig].
func Parse(data []byte, opts ...Option) (korekta.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	expand := expandReference
	if o.keepReferences {
		expand = func(s string) string { return s }
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return korekta.Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := korekta.DefaultConfig()
	if style := expand(fc.Style); style != "" {
		cfg.Style = korekta.Style(strings.ToLower(style))
	}
	if fc.Streaming != nil {
		cfg.Streaming = *fc.Streaming
	}
	if fc.HighlightDiffs != nil {
		cfg.HighlightDiffs = *fc.HighlightDiffs
	}
	for name, pc := range fc.Providers {
		p, err := korekta.ParseProviderID(name)
		if err != nil {
			return korekta.Config{}, fmt.Errorf("parse config: providers: %w", err)
		}
		cfg.Providers[p].APIKey = strings.TrimSpace(expand(pc.APIKey))
		if model := expand(pc.Model); model != "" {
			cfg.Providers[p].Model = model
		}
	}

	if err := cfg.Validate(); err != nil {
		return korekta.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

var referencePattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// expandReference resolves s when it is exactly one ${VAR} reference.
func expandReference(s string) string {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}
	return os.Getenv(m[1])
}

// Save writes cfg to path with owner-only permissions, creating parent
// directories as needed. The write is atomic.
func Save(path string, cfg korekta.Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML. Providers are keyed by lowercase name.
func Marshal(cfg korekta.Config) ([]byte, error) {
	streaming, highlight := cfg.Streaming, cfg.HighlightDiffs
	fc := fileConfig{
		Style:          string(cfg.Style),
		Streaming:      &streaming,
		HighlightDiffs: &highlight,
		Providers:      make(map[string]providerConfig, korekta.NumProviders),
	}
	for _, p := range korekta.Providers() {
		pc := cfg.Provider(p)
		fc.Providers[strings.ToLower(p.String())] = providerConfig{APIKey: pc.APIKey, Model: pc.Model}
	}
	return yaml.Marshal(fc)
}

// DefaultPath returns the configuration file location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "korekta", "config.yaml"), nil
}
