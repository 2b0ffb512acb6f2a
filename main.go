package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quartiles-solver/assets"
	"github.com/robalobadob/quartiles-solver/internal/config"
	"github.com/robalobadob/quartiles-solver/internal/dict"
	"github.com/robalobadob/quartiles-solver/internal/httpserver"
	"github.com/robalobadob/quartiles-solver/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// Load the dictionary once; it is shared read-only by every session.
	// Fall back to the embedded word list when no dictionary files are
	// configured, so the server always starts.
	d, err := dict.Open(cfg.Dict.Dir, cfg.Dict.Name)
	if err != nil {
		log.Warn().Err(err).Msg("no dictionary files; using embedded word list")
		words, werr := assets.WordList()
		if werr != nil {
			log.Fatal().Err(werr).Msg("failed to load embedded word list")
		}
		d = dict.New()
		d.Populate(words)
	}
	log.Info().Int("words", d.Len()).Msg("dictionary ready")

	boards, err := assets.SampleBoards()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load sample boards")
	}

	db, err := openDB(cfg.Server.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, d, cfg, boards)
	log.Info().Str("port", cfg.Server.Port).Msg("starting quartiles-solver")
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
