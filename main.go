package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/game"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/results"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/runner"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/score"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

func main() {
	_ = godotenv.Load()

	cmd, cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	setupLogging(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cmdServe:
		err = serve(cfg)
	default:
		err = scoreCorpus(ctx, cfg)
	}
	if err != nil {
		stop()
		log.Fatal().Err(err).Str("command", cmd).Msg("run failed")
	}
}

func setupLogging(cfg config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func loadCorpus(path string) (*words.Corpus, error) {
	if path == wordsEmbedded {
		return words.Embedded()
	}
	return words.Load(path)
}

// scoreCorpus runs the configured execution strategy over the corpus.
func scoreCorpus(ctx context.Context, cfg config) error {
	corpus, err := loadCorpus(cfg.WordsFile)
	if err != nil {
		return err
	}
	rules, err := game.ParseRules(cfg.Rules)
	if err != nil {
		return err
	}
	log.Info().Str("words", cfg.WordsFile).Int("count", corpus.Len()).
		Str("mode", cfg.Mode).Str("sink", cfg.Sink).Str("rules", rules.String()).
		Msg("loaded corpus")

	sc := score.New(corpus, score.WithRules(rules), score.WithIndex(cfg.Index))

	var bar runner.Progress
	if cfg.Progress {
		pb := progressbar.Default(int64(corpus.Len()), "scoring")
		defer func() { _ = pb.Finish() }()
		bar = pb
	}

	var db *results.SQLite
	if cfg.Sink == sinkSQLite {
		if db, err = results.OpenSQLite(cfg.DBPath); err != nil {
			return err
		}
		defer db.Close()
	}

	if cfg.Mode == modeParallel {
		var sink results.BulkWriter = results.File{Path: cfg.BulkFile}
		if db != nil {
			sink = db
		}
		recs, err := runner.RunParallel(ctx, sc, sink, cfg.Workers, bar)
		if err != nil {
			return err
		}
		if len(recs) > 0 {
			log.Info().Str("best", recs[0].Word.String()).Float64("score", recs[0].Score).Msg("done")
		}
		return nil
	}

	var sink results.Appender
	if db != nil {
		sink = db
	} else {
		f, err := results.OpenAppendFile(cfg.OutFile)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}
	n, err := runner.RunResumable(ctx, sc, sink, bar)
	if err != nil {
		return err
	}
	log.Info().Int("scored", n).Msg("done")
	return nil
}

// serve exposes the configured results over HTTP.
func serve(cfg config) error {
	var src results.Ranker
	switch {
	case cfg.Sink == sinkSQLite:
		db, err := results.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		src = db
	case cfg.Mode == modeParallel:
		src = results.File{Path: cfg.BulkFile}
	default:
		src = results.File{Path: cfg.OutFile}
	}

	srv := httpserver.New(src)
	log.Info().Str("port", cfg.Port).Msg("starting results server")
	return srv.Start(":" + cfg.Port)
}
