package bootstrap

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/chat-gateway/internal/api/http"
	"github.com/GoSim-25-26J-441/chat-gateway/internal/api/http/middleware"
	gatewayhttp "github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/http"
	"github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/service"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	UpstreamURL  string
	AllowOrigins []string
	RateLimitRPS float64
	RateBurst    int

	Runner  gatewayhttp.ChatRunner
	Probe   httpapi.ProbeSource
	Metrics *service.Metrics
	Logger  *slog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = slog.Default()
	}
	if dep.Metrics == nil {
		dep.Metrics = service.NewMetrics()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoRoute(httpapi.NotFound)
	r.NoMethod(httpapi.MethodNotAllowed)

	// AccessLog wraps Recovery so panicked requests are logged with their 500.
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(dep.Logger, dep.Metrics))
	r.Use(middleware.Recovery(dep.Logger))
	r.Use(cors.New(corsConfig(dep.AllowOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.UpstreamURL, dep.Probe)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))

	chatHandler := gatewayhttp.New(dep.Runner, service.NewSlogLogger(dep.Logger))
	chatHandler.Register(r, middleware.RateLimit(dep.RateLimitRPS, dep.RateBurst, dep.Metrics))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
