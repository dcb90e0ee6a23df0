package log

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Logger discards everything until EnsureLogger runs, so packages can log from tests.
var Logger = zap.NewNop()

var once sync.Once

func EnsureLogger() {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if debugEnabled() {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			return
		}

		Logger = l
	})
}

// debugEnabled parses DEBUG like config.Load.
func debugEnabled() bool {
	debug, err := strconv.ParseBool(os.Getenv("DEBUG"))
	return err == nil && debug
}

// Sync flushes buffered log entries. Call it once on shutdown.
func Sync() {
	_ = Logger.Sync()
}
