package main

import (
	"fmt"
	"runtime"

	"github.com/shindelr/Session-Logger-API/cmd/api/router"
	"github.com/shindelr/Session-Logger-API/pkg/application"
	"github.com/shindelr/Session-Logger-API/pkg/exithandler"
	"github.com/shindelr/Session-Logger-API/pkg/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var cpuCount = runtime.NumCPU()
	if cpuCount > 1 {
		runtime.GOMAXPROCS(cpuCount)
	}

	// load .env
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
		fmt.Println("Please ensure you load correct environment variables")
	}

	// start application
	app, err := application.Start()
	if err != nil {
		zap.S().Fatal(err.Error())
	}

	srv := server.
		Get().
		WithAddr(app.Cfg.GetAPIPort()).
		WithRouter(router.Api(app)).
		WithErrLogger(zap.S())

	// start the api server
	go func() {
		zap.S().Info("starting api server at ", app.Cfg.GetAPIPort())

		if err := srv.Start(); err != nil {
			zap.S().Warn(err.Error())
		}
	}()

	exithandler.Init(func() {
		zap.S().Info("Closing Application")

		if err := srv.Close(); err != nil {
			zap.S().Error(err.Error())
		}

		zap.S().Info("Application Closed")
	})

	zap.S().Info("Bye!")
}
