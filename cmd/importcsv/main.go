package main

import (
	"errors"
	"log"
	"os"

	"PairScope/internal/config"
	"PairScope/internal/loader"
)

// importcsv migrates the populator's CSV cache into the SQLite candle
// store, so analyses can run against a single database file instead
// of a directory tree.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

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
	if cfg.Database.SQLitePath == "" {
		log.Fatal("[FATAL] database.sqlite_path is required for import")
	}
	start, err := cfg.StartTime()
	if err != nil {
		log.Fatalf("[FATAL] config start time: %v", err)
	}

	store, err := loader.NewStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open candle store: %v", err)
	}
	defer store.Close()

	csvLoader := loader.NewCSVLoader()
	imported, skipped := 0, 0
	for _, ex := range cfg.Exchanges {
		for _, pair := range cfg.Pairs {
			req := loader.Request{
				DataDir:  cfg.Data.Dir,
				Exchange: ex.Name,
				Pair:     pair,
				TickSize: cfg.Data.TickSize,
				Start:    start,
				NumTicks: cfg.Data.NumTicks,
			}
			bars, err := csvLoader.Load(req)
			if err != nil {
				var le *loader.LoadError
				if errors.As(err, &le) {
					log.Printf("[WARN] skipping %s on %s: %v", pair, ex.Name, le.Err)
					skipped++
					continue
				}
				log.Fatalf("[FATAL] load %s on %s: %v", pair, ex.Name, err)
			}
			if err := store.SaveSeries(ex.Name, pair, cfg.Data.TickSize, bars); err != nil {
				log.Fatalf("[FATAL] save %s on %s: %v", pair, ex.Name, err)
			}
			log.Printf("[INFO] imported %d bars for %s on %s", len(bars), pair, ex.Name)
			imported++
		}
	}

	log.Printf("[INFO] import finished: %d series imported, %d skipped", imported, skipped)
}
