package main

import (
	_ "github.com/nkp491/surehelp/docs"
	"github.com/nkp491/surehelp/internal/bootstrap"
)

// @title SureHelp Metrics API
// @version 1.0.0
// @description Agency dashboard backend: daily activity counters, period metrics, ratios, team hierarchy and realtime notifications.

// @BasePath /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	bootstrap.Run()
}
