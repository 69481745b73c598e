// migrate prepares the local SQLite credential store from embedded SQL; run
// before first use of any CLI configured with STORE_DRIVER=sqlite.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"moda-marketplace/client/internal/config"
	"moda-marketplace/client/internal/store/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	storePath := flag.String("store", "", "Override STORE_PATH")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	path := cfg.StorePath
	if *storePath != "" {
		path = *storePath
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "store path is not set; set STORE_PATH in .env or pass --store")
		os.Exit(1)
	}

	if err := migrate.Run(path, *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			// Already at target version; success.
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
