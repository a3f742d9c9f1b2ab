// Package server exposes a small status and metrics endpoint for the bot.
// It is optional; the bot runs headless when no listen address is set.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the snapshot served at /status.
type Status struct {
	Running    bool   `json:"running"`
	Task       string `json:"task,omitempty"`
	BucketMode string `json:"bucket_mode"`
	BucketSlot int    `json:"bucket_slot"`
	FullCount  int    `json:"full_buckets"`
	Stations   int    `json:"stations"`
	PlantType  string `json:"plant_type,omitempty"`
	Pause      string `json:"session_pause"`
}

// StatusFunc captures the current bot state for serving.
type StatusFunc func() Status

// Server is the HTTP status endpoint.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// NewServer builds the status server on addr.
func NewServer(addr string, status StatusFunc, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Get("/healthz", handleHealthz())
	r.Get("/status", handleStatus(status))
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	s.log.Info("status server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func handleStatus(status StatusFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status()); err != nil {
			http.Error(w, "failed to encode status", http.StatusInternalServerError)
		}
	}
}
