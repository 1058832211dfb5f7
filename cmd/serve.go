package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"visa-engine/internal/config"
	"visa-engine/internal/engine"
	"visa-engine/internal/handler"
	"visa-engine/internal/logging"
	"visa-engine/internal/policy"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.ServerAddr = addr
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		provider, closeProvider := newProvider(cfg)
		defer closeProvider()

		limiter := handler.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
		defer limiter.Stop()

		h := handler.New(ctx, engine.New(loc), provider, limiter)
		return handler.ListenAndServe(ctx, cfg.ServerAddr, h)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (overrides server.addr)")
}

// newProvider picks the policy source: the external feed when configured, cached in
// Redis when an address is set, otherwise the built-in updates.
func newProvider(c *config.Config) (policy.Provider, func()) {
	if c.PolicyFeedURL == "" {
		return policy.Defaults{}, func() {}
	}

	if c.RedisAddr == "" {
		logging.Log.WithField("feed", c.PolicyFeedURL).Info("policy feed enabled with in-memory cache")
		return policy.NewFeed(c.PolicyFeedURL, c.PolicyFeedTimeout, policy.NewMemoryCache(), c.PolicyCacheTTL), func() {}
	}

	cache := policy.NewRedisCache(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	logging.Log.WithField("feed", c.PolicyFeedURL).WithField("redis", c.RedisAddr).Info("policy feed enabled with redis cache")
	return policy.NewFeed(c.PolicyFeedURL, c.PolicyFeedTimeout, cache, c.PolicyCacheTTL), func() {
		if err := cache.Close(); err != nil {
			logging.Log.WithError(err).Warn("closing redis cache")
		}
	}
}
