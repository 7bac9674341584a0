package transport

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/wifi-provisioner/api/v1"
	"github.com/kubev2v/wifi-provisioner/internal/config"
	"github.com/kubev2v/wifi-provisioner/internal/handlers"
	"github.com/kubev2v/wifi-provisioner/internal/server"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

const shutdownTimeout = 2 * time.Second

// Web serves the provisioning API for the duration of a session.
type Web struct {
	cfg            config.Server
	connectTimeout time.Duration

	mu  sync.Mutex
	srv *server.Server
}

func NewWeb(cfg config.Server, connectTimeout time.Duration) *Web {
	return &Web{cfg: cfg, connectTimeout: connectTimeout}
}

func (w *Web) Name() string { return "web" }

// Addr is the address of the running server, nil between sessions.
func (w *Web) Addr() net.Addr {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.srv == nil {
		return nil
	}
	return w.srv.Addr()
}

func (w *Web) Serve(ctx context.Context, bus *signals.Bus, end <-chan struct{}) error {
	log := zap.S().Named("web").With("session", bus.SessionID)

	h := handlers.New(bus, w.connectTimeout)
	srv := server.NewServer(w.cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err := srv.Listen(); err != nil {
		return err
	}

	w.mu.Lock()
	w.srv = srv
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.srv = nil
		w.mu.Unlock()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()
	log.Infow("provisioning portal listening", "address", srv.Addr())

	select {
	case <-end:
		log.Debug("session ended, stopping portal")
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Stop(stopCtx)
	<-errCh
	return err
}
