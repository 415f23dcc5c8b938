package main

import (
	_ "github.com/byu-pathway/insights-backend/docs"
	"github.com/byu-pathway/insights-backend/internal/bootstrap"
)

// @title Question Insights API
// @version 2.0.0
// @description Dashboard backend serving pre-computed question and topic analysis

// @host insights.byupathway.edu
// @BasePath /

// @securityDefinitions.apikey DevTokenAuth
// @in header
// @name X-Access-Token

func main() {
	bootstrap.Run()
}
