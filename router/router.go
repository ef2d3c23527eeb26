package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	assessCtrl interface {
		Assess(echo.Context) error
		Scenarios(echo.Context) error
	},
	rainCtrl interface {
		Get(echo.Context) error
		Import(echo.Context) error
		IngestURL(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.POST("/assessments", assessCtrl.Assess)
	e.GET("/assessments/scenarios", assessCtrl.Scenarios)

	g := e.Group("/rainfall")
	g.GET("", rainCtrl.Get)
	g.POST("/import", rainCtrl.Import)
	g.POST("/ingest/url", rainCtrl.IngestURL)

	return e
}
