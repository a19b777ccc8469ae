package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"yashubustudio/symptomcheck/diagnosis"
	"yashubustudio/symptomcheck/internal/logging"
	"yashubustudio/symptomcheck/internal/render"
	"yashubustudio/symptomcheck/internal/session"
)

type options struct {
	configPath string
	kbPath     string
	mode       string
	color      string
	logLevel   string
	writeCfg   string
}

func main() {
	_ = godotenv.Load()
	opts := parseFlags()
	if err := run(opts); err != nil {
		log.Fatalf("symptomcheck: %v", err)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", os.Getenv("SYMPTOMCHECK_CONFIG"), "Path to symptomcheck.json or .yaml (default: ./symptomcheck.json)")
	flag.StringVar(&opts.kbPath, "kb", os.Getenv("SYMPTOMCHECK_KB"), "YAML/JSON disease table replacing the built-in one")
	flag.StringVar(&opts.mode, "mode", "", "Session mode: auto, interactive or demo")
	flag.StringVar(&opts.color, "color", "", "Styling: auto, always or never")
	flag.StringVar(&opts.logLevel, "log-level", os.Getenv("SYMPTOMCHECK_LOG_LEVEL"), "Log level: debug, info, warn or error")
	flag.StringVar(&opts.writeCfg, "write-config", "", "Save the effective configuration to FILE (.json or .yaml) and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.kbPath = strings.TrimSpace(opts.kbPath)
	opts.mode = strings.ToLower(strings.TrimSpace(opts.mode))
	opts.color = strings.ToLower(strings.TrimSpace(opts.color))
	opts.logLevel = strings.TrimSpace(opts.logLevel)
	opts.writeCfg = strings.TrimSpace(opts.writeCfg)
	return opts
}

// resolveConfig loads the config file and applies flag and environment overrides.
func resolveConfig(opts options) (diagnosis.Config, error) {
	cfg, err := diagnosis.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if opts.kbPath != "" {
		cfg.KnowledgeBasePath = opts.kbPath
	}
	if opts.mode != "" {
		cfg.Mode = diagnosis.SessionMode(opts.mode)
	}
	if opts.color != "" {
		cfg.Color = diagnosis.ColorMode(opts.color)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(opts options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	if opts.writeCfg != "" {
		if err := diagnosis.SaveConfig(opts.writeCfg, cfg); err != nil {
			return err
		}
		fmt.Printf("Saved configuration to %s\n", opts.writeCfg)
		return nil
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	kb, err := diagnosis.LoadKnowledgeBase(cfg.KnowledgeBasePath, cfg.Connector)
	if err != nil {
		return err
	}
	engine, err := diagnosis.NewEngine(kb, cfg, logger)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := session.New(engine, session.Options{
		In:         os.Stdin,
		Out:        os.Stdout,
		Capability: render.ForMode(string(cfg.Color), render.DetectEnv(os.Stdout)),
		Logger:     logger,
	})
	mode := session.ResolveMode(cfg.Mode, render.IsTerminal(os.Stdin.Fd()))
	if err := driver.Run(ctx, mode); err != nil {
		logger.Warn("session ended with input error", zap.Error(err))
	}
	return nil
}
