package main

import (
	"log"
	"os"

	"PairScope/internal/analyzer"
	"PairScope/internal/config"
	"PairScope/internal/loader"
	"PairScope/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PairScope analyzer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	start, err := cfg.StartTime()
	if err != nil {
		log.Fatalf("[FATAL] config start time: %v", err)
	}

	// Init loader
	var ld loader.Loader
	if cfg.Database.SQLitePath != "" {
		store, err := loader.NewStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] open candle store: %v", err)
		}
		defer store.Close()
		ld = store
	} else {
		ld = loader.NewCSVLoader()
	}
	log.Printf("[INFO] series source: %s", ld.Name())

	// Init reporters
	reporters := []report.Reporter{report.NewConsoleReporter(os.Stdout)}
	if cfg.Output.Dir != "" {
		reporters = append(reporters, report.NewCSVReporter(cfg.Output.Dir))
	}

	for _, ex := range cfg.Exchanges {
		log.Printf("[INFO] analyzing %d pairs on %s (reference %s, lags [0,%d))",
			len(cfg.Pairs), ex.Name, cfg.Analysis.ReferencePair, cfg.Analysis.MaxLagOffset)

		res, err := analyzer.Run(ld, analyzer.Params{
			DataDir:        cfg.Data.Dir,
			Exchange:       ex.Name,
			Pairs:          cfg.Pairs,
			TickSize:       cfg.Data.TickSize,
			Start:          start,
			NumTicks:       cfg.Data.NumTicks,
			Reference:      cfg.Analysis.ReferencePair,
			MaxLagOffset:   cfg.Analysis.MaxLagOffset,
			SmoothHalfLife: cfg.Analysis.SmoothHalfLife,
		})
		if err != nil {
			log.Fatalf("[FATAL] analysis on %s: %v", ex.Name, err)
		}

		for _, rep := range reporters {
			if err := rep.Publish(res); err != nil {
				log.Fatalf("[FATAL] publish report for %s: %v", ex.Name, err)
			}
		}
	}

	log.Println("[INFO] PairScope analyzer done")
}
