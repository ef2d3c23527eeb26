package controller

import "github.com/labstack/echo/v4"

type RainfallController interface {
	Get(c echo.Context) error
	Import(c echo.Context) error
	IngestURL(c echo.Context) error
}
