// Command korekta sends a text to several language model providers at once
// and shows their corrections side by side.
//
// Usage:
//
//	OPENAI_API_KEY=sk-... ANTHROPIC_API_KEY=sk-... korekta [flags]
//
// Flags:
//
//	-config string     Path to the YAML config (default: user config dir)
//	-init              Write the config file with flag overrides applied and exit
//	-style string      Correction style (overrides the config file)
//	-no-stream         Request complete responses instead of streaming
//	-text string       Correct text without the TUI and print JSON ("-" reads stdin)
//	-log-file string   Log destination (default: state dir)
//	-log-format string Log format: text, json (default: text)
//	-log-level string  Log level: debug, info, warn, error (default: info)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fwojciec/korekta"
	bt "github.com/fwojciec/korekta/bubbletea"
	"github.com/fwojciec/korekta/session"
	"github.com/fwojciec/korekta/yaml"
	"github.com/joho/godotenv"
)

// environment carries everything run reads from the process environment.
type environment struct {
	Keys      [korekta.NumProviders]string
	StateHome string
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	env := environment{
		Keys: [korekta.NumProviders]string{
			korekta.OpenAI:    os.Getenv("OPENAI_API_KEY"),
			korekta.Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
			korekta.Gemini:    os.Getenv("GEMINI_API_KEY"),
			korekta.DeepSeek:  os.Getenv("DEEPSEEK_API_KEY"),
		},
		StateHome: os.Getenv("XDG_STATE_HOME"),
	}
	if err := run(os.Args[1:], env, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "korekta: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, env environment, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("korekta", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Path to the YAML config (default: user config dir)")
		initConfig = fs.Bool("init", false, "Write the config file with flag overrides applied and exit")
		style      = fs.String("style", "", "Correction style (overrides the config file)")
		noStream   = fs.Bool("no-stream", false, "Request complete responses instead of streaming")
		text       = fs.String("text", "", "Correct text without the TUI and print JSON (\"-\" reads stdin)")
		logFile    = fs.String("log-file", "", "Log destination (default: state dir)")
		logFormat  = fs.String("log-format", "text", "Log format: text, json")
		logLevel   = fs.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *configPath
	if path == "" {
		p, err := yaml.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if *initConfig {
		// Environment keys and ${VAR} values stay out of the written file.
		cfg, err := loadConfig(path, [korekta.NumProviders]string{}, *style, *noStream, yaml.KeepReferences())
		if err != nil {
			return err
		}
		if err := yaml.Save(path, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(stdout, "Config written to %s\n", path)
		return nil
	}

	cfg, err := loadConfig(path, env.Keys, *style, *noStream)
	if err != nil {
		return err
	}

	logPath := *logFile
	if logPath == "" {
		logPath = defaultLogPath(env.StateHome)
	}
	logger, closeLog, err := newLogger(logPath, *logFormat, *logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	mgr := session.New(newClients(newHTTPClient()), cfg, session.WithLogger(logger))

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *text != "" {
		input := *text
		if input == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			input = string(data)
		}
		return headless(ctx, mgr, input, cfg.HighlightDiffs, stdout)
	}

	if len(cfg.Enabled()) == 0 {
		return fmt.Errorf("%w: set OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY or DEEPSEEK_API_KEY (or api_key in %s)", korekta.ErrNoProviders, path)
	}

	m := bt.New(mgr, korekta.DefaultTheme(), bt.WithHighlight(cfg.HighlightDiffs))
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	mgr.Cancel()
	return nil
}

// loadConfig reads the config file and applies environment keys and flag
// overrides on top of it. Environment keys win over file keys.
func loadConfig(path string, keys [korekta.NumProviders]string, style string, noStream bool, opts ...yaml.Option) (korekta.Config, error) {
	cfg, err := yaml.Load(path, opts...)
	if err != nil {
		return korekta.Config{}, err
	}
	for _, p := range korekta.Providers() {
		if k := strings.TrimSpace(keys[p]); k != "" {
			cfg.Providers[p].APIKey = k
		}
	}
	if style != "" {
		s := korekta.Style(strings.ToLower(style))
		if !s.Known() {
			return korekta.Config{}, fmt.Errorf("unknown style %q: %w", style, korekta.ErrValidation)
		}
		cfg.Style = s
	}
	if noStream {
		cfg.Streaming = false
	}
	return cfg, cfg.Validate()
}
