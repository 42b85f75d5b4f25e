// Command forge-uci is the engine's process entrypoint: a UCI engine
// speaking the protocol over stdin/stdout, grounded on the teacher's
// main.go (blunext-chess/main.go), which wired magic.Prepare/engine.Run/
// uci.Start in sequence; here that becomes config loading, logger setup,
// and handing stdin/stdout to the uci front-end.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"forge/internal/config"
	"forge/internal/engine"
	"forge/internal/uci"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().
			Fatal().Err(err).Msg("loading configuration")
	}

	logFile, err := os.OpenFile("forge.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	var logger *engine.Logger
	if err != nil {
		logger = engine.NewLogger(os.Stderr)
	} else {
		defer logFile.Close()
		logger = engine.NewLogger(logFile)
	}
	defer logger.Close()

	logger.LogGameStart("startup")

	front := uci.New(os.Stdin, os.Stdout, logger, cfg)
	front.Run()
}
