package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/config"
	"github.com/kubev2v/wifi-provisioner/internal/server/middlewares"
)

const apiV1 string = "/api/v1"

type Server struct {
	srv    *http.Server
	engine *gin.Engine

	mu sync.Mutex
	ln net.Listener
}

func NewServer(cfg config.Server, registerHandlerFn func(router *gin.RouterGroup)) *Server {
	gin.SetMode(gin.DebugMode)
	if config.ServerModeType(cfg.ServerMode) == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if cfg.StaticsFolder != "" {
		// portal pages
		engine.Static("/static", cfg.StaticsFolder)
		engine.StaticFile("/", path.Join(cfg.StaticsFolder, "index.html"))

		engine.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "API endpoint not found",
				})
				return
			}
			// captive portal probes land on arbitrary paths
			c.File(path.Join(cfg.StaticsFolder, "index.html"))
		})
	}

	router := engine.Group(apiV1)
	router.Use(
		middlewares.Logger(),
		ginzap.RecoveryWithZap(zap.S().Desugar(), true),
	)

	registerHandlerFn(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.HTTPPort),
		Handler: engine,
	}

	return &Server{srv: srv, engine: engine}
}

// Handler exposes the router, mainly for tests.
func (r *Server) Handler() http.Handler {
	return r.engine
}

// Listen binds the configured address.
func (r *Server) Listen() error {
	ln, err := net.Listen("tcp", r.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.srv.Addr, err)
	}
	r.mu.Lock()
	r.ln = ln
	r.mu.Unlock()
	return nil
}

// Addr is the bound address, nil before Listen.
func (r *Server) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ln == nil {
		return nil
	}
	return r.ln.Addr()
}

// Start serves until Stop is called. It binds first if Listen was not called.
func (r *Server) Start(ctx context.Context) error {
	r.mu.Lock()
	ln := r.ln
	r.mu.Unlock()
	if ln == nil {
		if err := r.Listen(); err != nil {
			return err
		}
		r.mu.Lock()
		ln = r.ln
		r.mu.Unlock()
	}

	if err := r.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.S().Named("http").Errorw("failed to start server", "error", err)
		return err
	}
	return nil
}

func (r *Server) Stop(ctx context.Context) error {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Named("http").Errorw("server shutdown", "error", err)
		return err
	}
	return nil
}
