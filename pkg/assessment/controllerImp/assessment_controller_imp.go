package controllerImp

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rwh/pkg/assessment/service"
	"rwh/pkg/intake"
	"rwh/pkg/sizing"
)

type AssessCtrl struct{ svc service.AssessmentService }

func New(svc service.AssessmentService) *AssessCtrl { return &AssessCtrl{svc: svc} }

func (h *AssessCtrl) Assess(c echo.Context) error {
	var raw intake.RawRecord
	if err := c.Bind(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	result, err := h.svc.Assess(c.Request().Context(), raw, time.Now())
	if err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": verr.Error(),
				"field": verr.Field,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// Scenarios exposes the policy table so the intake UI can render the
// comparison before running a full assessment.
func (h *AssessCtrl) Scenarios(c echo.Context) error {
	return c.JSON(http.StatusOK, sizing.Policies)
}
