package main

import (
	"log"
	"net/http"
	"time"

	"github.com/kwadwoankamah/duesflow/factory"
	"github.com/kwadwoankamah/duesflow/internal/api/handlers"
	"github.com/kwadwoankamah/duesflow/internal/config"
)

type Server struct {
	Config   *config.Config
	Factory  *factory.Factory
	Handlers *handlers.Handlers
}

func NewServer() (*Server, func(), error) {
	cfg := config.New()

	f, cleanup, err := factory.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	server := &Server{
		Config:   cfg,
		Factory:  f,
		Handlers: handlers.NewHandlers(f, cfg),
	}

	server.router()
	return server, cleanup, nil
}

func (s *Server) Start() {
	s.Factory.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Server.Env).
		Msg("server_starting")

	srv := &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      s.Factory.Router,
		WriteTimeout: time.Second * 50,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
