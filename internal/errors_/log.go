package errors_

import (
	"github.com/rs/zerolog"
	"log"
)

// stdWriter sends every event to the current output of the standard logger,
// so redirecting log.SetOutput also redirects these events.
type stdWriter struct{}

func (stdWriter) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}

var logger = zerolog.New(stdWriter{}).With().Timestamp().Logger()

func Log(function any, err error) {
	logger.Error().Str("func", getFunctionName(function)).Err(err).Send()
}

func Info(function any, message string) {
	logger.Info().Str("func", getFunctionName(function)).Msg(message)
}
