package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	config  *Config
	catalog *Catalog
)

func init() {
	var err error

	// Extract necessary environment variables
	timeoutEnv := os.Getenv("TIMEOUT")
	appVersion = os.Getenv("APP_VERSION")

	// Set default value if not set
	if timeoutEnv == "" {
		globalTimeout = 30
	} else {
		// Convert timeout to integer
		globalTimeout, err = strconv.Atoi(timeoutEnv)
		if err != nil {
			log.Fatalf("Failed to convert timeout environment variable to integer")
		}
	}

	// Read curated keyword lists
	config, err = readConfig()
	if err != nil {
		log.Fatal(err)
	}

	// The reference catalogue is built once and never mutated after this.
	catalog = defaultCatalog()

	// Load the checkup workbook when one is configured
	if workbook := os.Getenv("CHECKUP_WORKBOOK"); workbook != "" {
		records, err = loadWorkbook(workbook)
		if err != nil {
			log.Fatal(err)
		}
	}
}

func main() {
	// Create new Echo object
	e := echo.New()

	// Add basic middleware to log all requests
	e.Use(middleware.Logger())

	// Configure elastic apm logging
	initAPM(e)

	// Sets CORS headers to allow all origins, but restrict HTTP method type
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	// Middleware to provide more control over response status for APM transactions
	// This must go after the Elastic APM middleware
	e.Use(filterError)

	// Adds a heartbeat handler
	e.GET("/heartbeat", heartbeat)

	// Creates API group to simplify middleware declaration
	reportGroup := e.Group("/report-services")

	// Add a GET handler for presenting the report services available
	reportGroup.GET("", reportServices)

	// Interpret a posted record + history
	reportGroup.POST("/interpret", interpretReport, openId)

	// Assemble and interpret a patient from the loaded workbook
	reportGroup.POST("/patients/:key", patientReport, openId)

	// Start server
	e.Logger.Fatal(e.Start(":8000"))
}
