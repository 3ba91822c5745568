// Package admin implements the optional HTTP observability surface — health,
// Prometheus metrics, and pprof — kept isolated from the TCP wire protocol.
// It is built on gin-gonic/gin with a zap logging middleware and CORS.
package admin

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"package-indexer/internal/metrics"
	"package-indexer/internal/store"
)

// Server wraps an *http.Server exposing the admin routes.
type Server struct {
	httpServer *http.Server
}

// zapLogger returns a gin middleware that logs each request through log,
// leveling the log line by response status.
func zapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		switch {
		case status >= 500:
			log.Error("admin request", fields...)
		case status >= 400:
			log.Warn("admin request", fields...)
		default:
			log.Info("admin request", fields...)
		}
	}
}

// New builds the admin HTTP server bound to addr. s reports store size for the
// readiness payload; m supplies the Prometheus registry for /metrics.
func New(addr string, s *store.Store, m *metrics.Metrics, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(zapLogger(log.Named("admin")))

	r.GET("/healthz", func(c *gin.Context) {
		indexed, _, _ := s.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"readiness": true,
			"liveness":  true,
			"indexed":   indexed,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	// pprof is mounted only on the admin surface, never on the wire-protocol
	// listener, so profiling access doesn't require exposing the TCP port.
	r.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			ErrorLog:     zap.NewStdLog(log.Named("admin-http").WithOptions(zap.AddCallerSkip(1))),
		},
	}
}

// ListenAndServe starts the admin server. Blocks until Shutdown is called or a
// non-graceful error occurs.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the admin server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
