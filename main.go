// main is the entrypoint for the repominer CLI.
package main

import (
	"github.com/repominer/repominer/cmd"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		// LogFatal exits, so flush stores explicitly before bailing out.
		iocache.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
