package main

import (
	"log"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/api"
)

// @title M365 License Optimizer API
// @version 1.0
// @description Analyzes per-user license usage of Microsoft 365 tenants and recommends downgrades and removals.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
