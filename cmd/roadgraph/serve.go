package main

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voidshard/roadgraph"
	"github.com/voidshard/roadgraph/internal/logger"
	"github.com/voidshard/roadgraph/internal/metrics"
)

type serveCmd struct {
	storeOpts

	Addr string `long:"addr" env:"ADDR" default:":9090" description:"Listen address"`

	Args struct {
		Name string `positional-arg-name:"NAME" required:"true" description:"Saved map"`
	} `positional-args:"true"`
}

// Execute serves the map until interrupted.
func (c *serveCmd) Execute(_ []string) error {
	l := logger.L()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := c.load(ctx, c.Args.Name)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(m.Stats())
	})
	mux.HandleFunc("/render.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "image/png")
		if err := png.Encode(w, roadgraph.Render(m, roadgraph.RenderOptions{})); err != nil {
			l.Warn("render_failed", "err", err)
		}
	})

	s := &http.Server{Addr: c.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdown)
	}()

	l.Info("listening", "addr", c.Addr, "map", c.Args.Name)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
