package main

import (
	"os"

	"github.com/tartampluch/go-reldate/cmd/go-reldate/cmd"
)

// main delegates to cmd.Execute so that deferred cleanups (log file,
// signal handling) run before the process exits.
func main() {
	os.Exit(cmd.Execute())
}
