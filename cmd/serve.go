package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/catalog"
	"github.com/mondai-quiz/mondai/internal/devserver"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local result aggregation server for development",
		Long: `Serve the result API (POST /api/results, GET /api/results/{id},
GET /api/sets/{setId}/stats) and the built-in question sets under /sets/.

Results are kept in memory unless a Redis address is configured.
Point the client at it with --api http://localhost:8787.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetString("addr"); v != "" {
				cfg.Server.Addr = v
			}
			if v, _ := cmd.Flags().GetString("redis"); v != "" {
				cfg.Server.Redis.Addr = v
			}

			log, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}

			var st devserver.Store = devserver.NewMemoryStore()
			if cfg.Server.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Server.Redis.Addr,
					Password: cfg.Server.Redis.Password,
					DB:       cfg.Server.Redis.DB,
				})
				defer client.Close()
				if err := client.Ping(cmd.Context()).Err(); err != nil {
					return fmt.Errorf("connect redis %s: %w", cfg.Server.Redis.Addr, err)
				}
				st = devserver.NewRedisStore(client, cfg.RedisTTL())
			}
			log.WithFields(logrus.Fields{
				"addr":  cfg.Server.Addr,
				"redis": cfg.Server.Redis.Addr,
			}).Info("aggregation server configured")

			h := devserver.NewHandler(st,
				devserver.WithSets(catalog.Builtin()),
				devserver.WithLogger(log),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return devserver.NewServer(cfg.Server.Addr, h, log).Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8787)")
	cmd.Flags().String("redis", "", "Redis address; empty keeps results in memory")
	return cmd
}
