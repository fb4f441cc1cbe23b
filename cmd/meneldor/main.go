// Command meneldor is a UCI-speaking chess engine. It reads commands from
// stdin and writes UCI protocol responses to stdout until told to quit.
package main

import (
	"flag"
	"log"

	"github.com/meneldor/meneldor/internal/config"
	"github.com/meneldor/meneldor/internal/engine"
	"github.com/meneldor/meneldor/internal/uci"
)

var configPath = flag.String("config", "meneldor.toml", "path to an optional engine config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config %s: %v", *configPath, err)
	}

	eng := engine.NewEngine(cfg.HashMB)
	eng.SetContempt(cfg.Contempt)

	protocol := uci.New(eng)
	protocol.Run()
}
