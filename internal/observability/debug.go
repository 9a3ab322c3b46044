package observability

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// DebugServer exposes the client's reconciled state, health and metrics
// over local HTTP for bots and monitoring. It is optional and never part of
// the session core.
type DebugServer struct {
	snapshot func() any
	srv      *http.Server
	log      zerolog.Logger
}

func NewDebugServer(addr string, snapshot func() any, logger zerolog.Logger) *DebugServer {
	return &DebugServer{
		snapshot: snapshot,
		srv:      &http.Server{Addr: addr, Handler: newDebugRouter(snapshot, logger)},
		log:      logger,
	}
}

func newDebugRouter(snapshot func() any, logger zerolog.Logger) *gin.Engine {
	RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, snapshot())
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Serve blocks until the listener fails or Close is called.
func (d *DebugServer) Serve() error {
	d.log.Info().Str("addr", d.srv.Addr).Msg("debug server listening")
	err := d.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (d *DebugServer) Close() error {
	return d.srv.Close()
}

// RequestLogger logs one line per request at a level matching the status.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	}
}
