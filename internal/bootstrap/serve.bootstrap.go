package bootstrap

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/handler/web"
	"github.com/robinclaw/robinclaw/internal/infrastructure"
	"github.com/robinclaw/robinclaw/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// StartServer runs the read-only web surface.
func StartServer(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tradingService, nc := newTradingService(ctx)

	// rate limiting is opt-in: without redis configured, requests pass through
	var redisClient *redis.Client
	if cacheCfg, ok := config.Env.Redis["cache"]; ok && strings.TrimSpace(cacheCfg.CacheDSN) != "" {
		var err error
		redisClient, err = infrastructure.NewRedisClient(ctx, cacheCfg)
		util.ContinueOrFatal(err)
	} else {
		logrus.Warn("redis not configured, web rate limiting disabled")
	}

	mux := http.NewServeMux()
	web.NewWebHTTPHandler(tradingService).Register(mux)

	rateLimited := web.RateLimitMiddleware(redisClient, config.Env.Web.RateLimitPerSecond)(mux)

	serverConfig := infrastructure.DefaultHTTPServerConfig()
	if port, err := cmd.Flags().GetInt("port"); err == nil && port > 0 {
		serverConfig.Addr = ":" + strconv.Itoa(port)
	}

	httpServer := infrastructure.NewHTTPServer(serverConfig, rateLimited)

	go func() {
		util.ContinueOrFatal(httpServer.Start())
	}()

	shutdownOps := map[string]operation{
		"http server": func(ctx context.Context) error {
			cancel()
			return httpServer.Shutdown(ctx)
		},
	}
	if nc != nil {
		shutdownOps["nats connection"] = func(ctx context.Context) error {
			return infrastructure.CloseJetstream(nc)
		}
	}
	if redisClient != nil {
		shutdownOps["redis connection"] = func(ctx context.Context) error {
			return redisClient.Close()
		}
	}

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, shutdownOps)

	<-wait
}
