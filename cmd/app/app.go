package main

import (
	"os"

	"github.com/DRSN-tech/pharmacy-storefront/internal/app"
	config "github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
)

//	@title			Pharmacy Storefront API
//	@version		1.0
//	@description	Каталог аптеки, корзины сессий и оформление заказа с подтверждением.
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	bootLog := logger.NewSlogLogger()

	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	log := logger.NewSlogLoggerWithWriter(os.Stdout, logger.ParseLevel(cfg.Log.Level))

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
