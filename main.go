package main

import (
	"github.com/Anusha-Pandit/Books-Log/internal/config"
	"github.com/Anusha-Pandit/Books-Log/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
