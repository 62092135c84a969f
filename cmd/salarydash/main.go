// cmd/salarydash/main.go
package main

import (
	"os"

	"github.com/joho/godotenv"
	cmd "github.com/mwiater/salarydash/internal/cli"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	loadEnv        = func() error { return godotenv.Load() }
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main loads a local .env file outside production, so SALARYDASH_* overrides
// can live next to the binary, then hands over to the cobra root command.
func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = loadEnv()
	}
	setVersionInfo(version, commit, date)
	executeCmd()
}
