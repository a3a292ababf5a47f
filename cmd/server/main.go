package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/store"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// 1. Open the user dictionary store
	st, err := store.Open(cfg.Server.Store)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	// 2. Setup access log, the input of /trigger-discovery
	var accessLog io.Writer = io.Discard
	if cfg.Server.AccessLog != "" {
		logF, err := os.OpenFile(cfg.Server.AccessLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer logF.Close()
		accessLog = logF
	}

	// 3. Initial Load
	srv := newServer(cfg, st, accessLog)
	if err := srv.reload(); err != nil {
		log.Fatalf("Initial load failed: %v", err)
	}

	log.Printf("Server started on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, srv.routes()))
}
