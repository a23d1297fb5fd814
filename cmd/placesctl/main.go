package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/app"
	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/pkg/logger"
)

var version = "dev"

// globalOptions - persistent флаги корневой команды
type globalOptions struct {
	configPath string
	storage    string
	sqlitePath string
	output     string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "placesctl",
		Short:         "Query nearby places and manage the local snapshot cache",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", ".env", "path to env config file")
	root.PersistentFlags().StringVar(&opts.storage, "storage", config.StorageSQLite, "storage backend (sqlite|redis)")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "sqlite database path (overrides SQLITE_PATH)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "output format (table|json|yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "write debug logs to stdout")

	root.AddCommand(
		newNearbyCmd(opts),
		newCacheCmd(opts),
		newBrandCmd(opts),
		newWarmCmd(opts),
	)
	return root
}

// open загружает конфигурацию с учетом флагов и собирает зависимости
func (o *globalOptions) open() (*app.Container, error) {
	if err := validateOutput(o.output); err != nil {
		return nil, err
	}

	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.storage != "" {
		if o.storage != config.StorageSQLite && o.storage != config.StorageRedis {
			return nil, fmt.Errorf("unknown storage backend %q", o.storage)
		}
		cfg.Storage.Backend = o.storage
	}
	if o.sqlitePath != "" {
		cfg.Storage.SQLitePath = o.sqlitePath
	}

	log := zap.NewNop()
	if o.verbose {
		if log, err = logger.New("debug", "placesctl"); err != nil {
			return nil, err
		}
	}

	return app.New(cfg, log)
}
