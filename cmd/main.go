package main

import "github.com/adanyl0v/pern-todo/internal/app"

func main() {
	logger := app.NewDefaultLogger()
	cfg := app.MustReadEnv(logger)
	logger = app.MustInitApplicationLogger(logger, cfg.Env)

	pool := app.MustConnectPostgres(logger, cfg.Postgres)
	defer app.DisconnectPostgres(logger, pool)

	app.MustListenAndServeHTTP(logger, cfg, pool)
}
