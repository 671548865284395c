// Package catalogimporter loads Daggerheart domain card catalogs from YAML
// locale folders into the game store.
package catalogimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	platformcmd "github.com/louisbranch/advancement/internal/platform/cmd"
	"github.com/louisbranch/advancement/internal/services/game/storage"
	storagesqlite "github.com/louisbranch/advancement/internal/services/game/storage/sqlite"
)

const (
	defaultBaseLocale = "en-US"
	defaultSystemID   = "daggerheart"
	defaultSystemVer  = "v1"
)

// Config holds configuration for the catalog importer.
type Config struct {
	Dir        string `env:"CATALOG_DIR"`
	DBPath     string `env:"DB_PATH"     envDefault:"data/advancement.db"`
	BaseLocale string `env:"BASE_LOCALE" envDefault:"en-US"`
	DryRun     bool   `env:"DRY_RUN"`
}

// ParseConfig parses environment and CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory containing locale subfolders")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "game database path")
	fs.StringVar(&cfg.BaseLocale, "base-locale", cfg.BaseLocale, "base locale used for catalog data")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "validate without writing to the database")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Dir) == "" {
		return Config{}, errors.New("dir is required")
	}
	if strings.TrimSpace(cfg.BaseLocale) == "" {
		return Config{}, errors.New("base-locale is required")
	}

	return cfg, nil
}

// Run executes the importer using the provided Config. Every locale is
// validated; only the base locale is written.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return errors.New("dir is required")
	}
	baseLocale := strings.TrimSpace(cfg.BaseLocale)
	if baseLocale == "" {
		baseLocale = defaultBaseLocale
	}

	locales, err := listLocaleDirs(dir)
	if err != nil {
		return err
	}
	if len(locales) == 0 {
		return errors.New("no locale directories found")
	}
	if !contains(locales, baseLocale) {
		return fmt.Errorf("base-locale %s not found in %s", baseLocale, dir)
	}

	catalogs := make(map[string]localeCatalog, len(locales))
	for _, locale := range locales {
		catalog, err := readLocaleCatalog(filepath.Join(dir, locale), locale)
		if err != nil {
			return fmt.Errorf("read %s: %w", locale, err)
		}
		catalogs[locale] = catalog
	}
	base := catalogs[baseLocale]
	for _, locale := range locales {
		if locale == baseLocale {
			continue
		}
		if err := validateTranslation(base, catalogs[locale]); err != nil {
			return fmt.Errorf("validate %s: %w", locale, err)
		}
	}

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d card(s) across %d locale(s)\n", len(base.Cards), len(locales))
		return err
	}

	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open game store: %w", err)
	}
	defer store.Close()

	if err := upsertCards(ctx, store, base.Cards); err != nil {
		return fmt.Errorf("import %s: %w", baseLocale, err)
	}
	_, err = fmt.Fprintf(out, "imported %d card(s) into %s\n", len(base.Cards), cfg.DBPath)
	return err
}

func listLocaleDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			locales = append(locales, entry.Name())
		}
	}
	sort.Strings(locales)
	return locales, nil
}

func contains(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}

var _ storage.ContentStore = (*storagesqlite.Store)(nil)
