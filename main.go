package main

import (
	"github.com/PitchPoint/nda_service/config"
	"github.com/PitchPoint/nda_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
