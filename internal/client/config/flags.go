package config

import (
	"flag"
	"os"
	"time"

	"github.com/visualcaption/vcap/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   base URL of the REST backend (default from Config)
//	-p string   caption inference endpoint URL
//	-d string   description inference endpoint URL
//	-s string   path of the local state database
//	-t int      backend request timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-p", "-d", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "base URL of the REST backend")
	fs.StringVar(&cfg.CaptionEndpoint, "p", cfg.CaptionEndpoint, "caption inference endpoint URL")
	fs.StringVar(&cfg.DescriptionEndpoint, "d", cfg.DescriptionEndpoint, "description inference endpoint URL")
	fs.StringVar(&cfg.StateDBPath, "s", cfg.StateDBPath, "path of the local state database")
	httpTimeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "backend request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
