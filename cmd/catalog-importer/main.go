// Package main imports Daggerheart domain card catalogs into the game store.
package main

import (
	"context"
	"flag"
	"os"

	platformcmd "github.com/louisbranch/advancement/internal/platform/cmd"
	"github.com/louisbranch/advancement/internal/platform/config"
	catalogimporter "github.com/louisbranch/advancement/internal/tools/importer/content/daggerheart/v1"
)

func main() {
	cfg, err := catalogimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	err = platformcmd.RunWithTelemetry(context.Background(), platformcmd.ServiceCatalogImporter, func(ctx context.Context) error {
		return catalogimporter.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
