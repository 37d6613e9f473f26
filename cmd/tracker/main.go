package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AviatorStats/internal/config"
	"AviatorStats/internal/console"
	"AviatorStats/internal/history"
	"AviatorStats/internal/logger"
	"AviatorStats/internal/metrics"
	"AviatorStats/internal/model"
	"AviatorStats/internal/predictor"
	"AviatorStats/internal/recorder"
	"AviatorStats/internal/scheduler"
	"AviatorStats/internal/view"
)

func main() {
	log := logger.WithComponent("main")
	log.Info("AviatorStats starting...")

	if err := config.LoadDotEnv(".env"); err != nil {
		log.WithError(err).Warn("ignoring .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("config validation")
	}
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File, cfg.Logging.MaxAgeDays); err != nil {
		log.WithError(err).Fatal("configure logging")
	}

	if err := run(cfg); err != nil {
		log.WithError(err).Fatal("AviatorStats stopped with error")
	}
	log.Info("AviatorStats stopped")
}

// run wires the session and blocks until the console stops.
func run(cfg *config.Config) error {
	log := logger.WithComponent("main")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.WithError(err).Warn("init sqlite ledger failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	m := metrics.New()

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.WithError(err).Error("metrics server")
			}
		}()
	}

	// History is generated once per session.
	gen := history.NewGenerator(history.Options{
		BaseRoundNumber:  cfg.History.BaseRoundNumber,
		Interval:         cfg.History.Interval,
		CrashProbability: cfg.History.CrashProbability,
		MinMultiplier:    cfg.History.MinMultiplier,
		MaxMultiplier:    cfg.History.MaxMultiplier,
	})
	rounds := gen.Generate(cfg.History.Size)
	if err := rec.RecordHistory(rounds); err != nil {
		log.WithError(err).Error("record history")
	}
	log.WithField("rounds", len(rounds)).Info("history generated")

	pred := predictor.New(predictor.Options{
		Latency:       cfg.Prediction.Latency,
		MinMultiplier: cfg.Prediction.MinMultiplier,
		MaxMultiplier: cfg.Prediction.MaxMultiplier,
		MinConfidence: cfg.Prediction.MinConfidence,
		MaxConfidence: cfg.Prediction.MaxConfidence,
		OnPublish: func(batch model.PredictionBatch, elapsed time.Duration) {
			m.ObserveBatch(elapsed)
			if err := rec.RecordBatch(batch); err != nil {
				log.WithError(err).Error("record prediction batch")
			}
		},
	})

	con := console.New(os.Stdin, os.Stdout)

	sched := scheduler.NewScheduler(ctx, rounds, pred, rec, m, con, cfg.Prediction.BatchSize)
	if err := sched.RegisterRefresh(cfg.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if err := con.Send(view.Help()); err != nil {
		log.WithError(err).Error("write help")
	}

	log.Info("AviatorStats is running. Press Ctrl+C or close input to stop.")
	if err := con.Run(ctx, sched.HandleCommand); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
