package main

import (
	"flag"

	"timeclock/global"
	"timeclock/initialize"
	"timeclock/server"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to YAML config file")
		host       = flag.String("host", "", "Override server host")
		port       = flag.Int("port", 0, "Override server port")
	)
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}

	h := app.Cfg.HTTP.Host
	if *host != "" {
		h = *host
	}
	p := app.Cfg.HTTP.Port
	if *port != 0 {
		p = *port
	}

	global.Logger.Info().Str("host", h).Int("port", p).Msg("listening")
	if err := server.StartHTTPServer(h, p, app.Router); err != nil {
		global.Logger.Fatal().Err(err).Msg("http server")
	}
}
