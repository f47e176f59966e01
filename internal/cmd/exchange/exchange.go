// Package exchange parses exchange service flags and launches the service.
package exchange

import (
	"context"
	"flag"
	"strings"

	entrypoint "github.com/louisbranch/intercambio/internal/platform/cmd"
	"github.com/louisbranch/intercambio/internal/platform/config"
	server "github.com/louisbranch/intercambio/internal/services/exchange/app"
)

// Config holds exchange command configuration.
type Config struct {
	HTTPAddr     string   `env:"INTERCAMBIO_HTTP_ADDR" envDefault:"localhost:5000"`
	GRPCAddr     string   `env:"INTERCAMBIO_GRPC_ADDR"`
	Store        string   `env:"INTERCAMBIO_STORE" envDefault:"json"`
	DataPath     string   `env:"INTERCAMBIO_DATA_PATH"`
	Participants []string `env:"INTERCAMBIO_PARTICIPANTS" envSeparator:","`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	participants := strings.Join(cfg.Participants, ",")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (empty disables it)")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Storage backend: json or sqlite")
	fs.StringVar(&cfg.DataPath, "data-path", cfg.DataPath, "State file or database path")
	fs.StringVar(&participants, "participants", participants, "Comma-separated participant names")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Participants = config.SplitList(participants)
	return cfg, nil
}

// Run starts the exchange HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceExchange, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:     cfg.HTTPAddr,
			GRPCAddr:     cfg.GRPCAddr,
			Store:        cfg.Store,
			DataPath:     cfg.DataPath,
			Participants: cfg.Participants,
		})
	})
}
