package main

import (
	"github.com/joho/godotenv"
	"github.com/sweetpay/sweetpay-go/internal/config"
	"github.com/sweetpay/sweetpay-go/internal/observability"
	"github.com/sweetpay/sweetpay-go/internal/relay"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		config.Module,
		observability.Module,
		relay.Module,
	)
	app.Run()
}
