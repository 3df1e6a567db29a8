package main

import (
	"bankrates/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Bank Rates API
// @version 1.0
// @description Operations API of the bank USD rate watcher.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped with error")
	}
}
