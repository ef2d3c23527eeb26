package controller

import "github.com/labstack/echo/v4"

type AssessmentController interface {
	Assess(c echo.Context) error
	Scenarios(c echo.Context) error
}
