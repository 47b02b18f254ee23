package main

import (
	"runtime"

	"github.com/bnema/tabgroups/internal/cli/cmd"
	"github.com/bnema/tabgroups/internal/domain/build"
	"github.com/bnema/tabgroups/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	logger := logging.NewFromEnv()
	defer logging.RecoverPanic(&logger)

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}
