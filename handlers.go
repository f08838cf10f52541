package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	appVersion string
)

type ServiceResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Id          string `json:"id"`
	Version     string `json:"version,omitempty"`
}

func reportServices(c echo.Context) error {
	// Build the service listing
	serviceResponse := ServiceResponse{
		Services: []Service{
			{
				Title:       "Interpret Checkup Record",
				Description: "Interprets one annual checkup record (plus optional history) into per-test, per-domain, and advice output",
				Id:          "interpret",
				Version:     appVersion,
			},
			{
				Title:       "Patient Checkup Report",
				Description: "Assembles the merged record for a patient/year from the loaded workbook and interprets it",
				Id:          "patients",
				Version:     appVersion,
			},
		},
	}

	// Return response
	return c.JSON(http.StatusOK, serviceResponse)
}

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.NoContent(http.StatusOK)
}
