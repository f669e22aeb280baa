package main

import (
	"menucatalog/config"
	"menucatalog/routes"
)

func main() {
	cfg := config.Load()
	config.InitDB()
	r := routes.SetupRouter(cfg)
	r.Run(":" + cfg.Port)
}
