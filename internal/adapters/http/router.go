package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/adapters/signal"
	"github.com/rvasily/Beacon/internal/app"
	"github.com/rvasily/Beacon/internal/config"
)

// ClientTokenMiddleware gives every browser a stable token, stored in
// the cookie session. The token never identifies a signaling session
// (socket ids are fresh per connection); it only keys the upgrade rate
// limiter across reconnects.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		token, _ := sess.Get("client_token").(string)
		if token == "" {
			token = uuid.NewString()
			sess.Set("client_token", token)
			if err := sess.Save(); err != nil {
				log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, hub *app.Hub) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("BeaconSessions", store))
	r.Use(ClientTokenMiddleware())

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
	}
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "WebRTC Signaling Server is running!")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	limiter := signal.NewConnRateLimiter(cfg.ConnRateLimit, cfg.ConnRateWindow)
	ctrl := signal.NewSignalWSController(hub, limiter, cfg.ReadLimit, cfg.PingPeriod)

	api := r.Group("/api")

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("token", c.GetString("client_token")).Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	api.GET("/ice", func(c *gin.Context) {
		servers, err := cfg.ICEServers()
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("ice servers")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ice configuration invalid"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	})

	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"connections": hub.ConnectionCount(),
			"rooms":       hub.RoomCount(),
		})
	})

	return r
}
