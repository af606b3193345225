package main

import (
	"github.com/mmahmood233/buy-01/config"
	"github.com/mmahmood233/buy-01/internal/app"
)

func main() {
	config := config.CreateNewConfig()

	server := app.App{
		Config: config,
	}

	server.Start()
}
