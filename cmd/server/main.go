package main

import (
	"flag"
	"strings"

	"clipsource/internal/app"
	"clipsource/internal/config"
	"clipsource/pkg/logger"
)

var (
	configPath     string
	bind           string
	allowedOrigins string
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&bind, "bind", "", "Bind address, overrides the config file")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
}

func main() {
	flag.Parse()
	log := logger.GetLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if bind != "" {
		cfg.Server.Bind = bind
	}

	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	service, err := app.BuildService(cfg)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	server := NewServer(service, &ServerConfig{
		Bind:           cfg.Server.Bind,
		DBPath:         cfg.Paths.DBPath,
		AllowedOrigins: origins,
	})
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
