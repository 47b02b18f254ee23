package logging

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// RecoverPanic logs a panic with its stack trace and exits with status 2.
// Use as: defer logging.RecoverPanic(&logger).
func RecoverPanic(logger *zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	logPanic(logger, r, debug.Stack())
	os.Exit(2)
}

func logPanic(logger *zerolog.Logger, r any, stack []byte) {
	if logger == nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, stack)
		return
	}
	logger.WithLevel(zerolog.FatalLevel).
		Str("panic", fmt.Sprint(r)).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Bytes("stack", stack).
		Msg("unrecovered panic")
}
