package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

const (
	cmdScore = "score"
	cmdServe = "serve"

	modeResumable = "resumable"
	modeParallel  = "parallel"

	sinkCSV    = "csv"
	sinkSQLite = "sqlite"

	wordsEmbedded = "embedded"
)

// config is the resolved runtime configuration: defaults, overridden by the
// environment (and .env), overridden by flags.
type config struct {
	WordsFile string
	Mode      string
	Sink      string
	OutFile   string
	BulkFile  string
	DBPath    string
	Rules     string
	Index     bool
	Workers   int
	Progress  bool
	Port      string
	LogLevel  string
	LogFormat string
}

func configFromEnv() config {
	return config{
		WordsFile: envStr("WORDS_FILE", "words-5.txt"),
		Mode:      envStr("SCORE_MODE", modeResumable),
		Sink:      envStr("SCORE_SINK", sinkCSV),
		OutFile:   envStr("OUTPUT_FILE", "words-5-output.txt"),
		BulkFile:  envStr("BULK_OUTPUT_FILE", "words-5-sorted.txt"),
		DBPath:    envStr("SCORES_DB", "./data/scores.db"),
		Rules:     envStr("SCORE_RULES", "reference"),
		Index:     envBool("SCORE_INDEX", true),
		Workers:   envInt("WORKERS", runtime.NumCPU()),
		Progress:  envBool("PROGRESS", true),
		Port:      envStr("PORT", "5176"),
		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "json"),
	}
}

// parseArgs splits off the subcommand (default "score") and applies flags on
// top of the environment configuration.
func parseArgs(args []string, stderr io.Writer) (string, config, error) {
	cfg := configFromEnv()

	cmd := cmdScore
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	if cmd != cmdScore && cmd != cmdServe {
		return "", cfg, fmt.Errorf("unknown command %q (want %s|%s)", cmd, cmdScore, cmdServe)
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file, or \"embedded\"")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "execution strategy: resumable|parallel")
	fs.StringVar(&cfg.Sink, "sink", cfg.Sink, "result sink: csv|sqlite")
	fs.StringVar(&cfg.OutFile, "out", cfg.OutFile, "resumable CSV output file")
	fs.StringVar(&cfg.BulkFile, "bulk-out", cfg.BulkFile, "sorted CSV output file (parallel mode)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Rules, "rules", cfg.Rules, "constraint rules: reference|strict")
	fs.BoolVar(&cfg.Index, "index", cfg.Index, "count candidates with the bitset index")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel worker count")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "show a progress bar")
	fs.StringVar(&cfg.Port, "port", cfg.Port, "listen port for serve")
	if err := fs.Parse(args); err != nil {
		return "", cfg, err
	}
	if fs.NArg() > 0 {
		return "", cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cmd, cfg, cfg.validate()
}

func (c config) validate() error {
	if c.Mode != modeResumable && c.Mode != modeParallel {
		return fmt.Errorf("mode %q: want %s|%s", c.Mode, modeResumable, modeParallel)
	}
	if c.Sink != sinkCSV && c.Sink != sinkSQLite {
		return fmt.Errorf("sink %q: want %s|%s", c.Sink, sinkCSV, sinkSQLite)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if c.WordsFile == "" {
		return fmt.Errorf("words file is required")
	}
	return nil
}

// envStr returns the value of k or def if unset/empty.
func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt returns k parsed as an int, or def if unset or invalid.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envBool returns k parsed as a bool, or def if unset or invalid.
func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
