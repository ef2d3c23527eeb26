package controllerImp

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"rwh/entities"
	"rwh/pkg/rainfall/ingest"
	"rwh/pkg/rainfall/loader"
	"rwh/pkg/rainfall/repository"
)

type RainCtrl struct{ repo repository.RainfallRepository }

func New(repo repository.RainfallRepository) *RainCtrl { return &RainCtrl{repo: repo} }

func (h *RainCtrl) Get(c echo.Context) error {
	state := strings.TrimSpace(c.QueryParam("state"))
	city := strings.TrimSpace(c.QueryParam("city"))
	if state == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "state required"})
	}
	if city == "" {
		ns, err := h.repo.List(state)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, ns)
	}
	n, err := h.repo.Find(state, city)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no climatology for that location"})
	}
	return c.JSON(http.StatusOK, n)
}

func (h *RainCtrl) Import(c echo.Context) error {
	var body struct {
		Path  string `json:"path"`
		Sheet string `json:"sheet"`
	}
	if err := c.Bind(&body); err != nil || body.Path == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "path required"})
	}

	var (
		ns  []entities.RainfallNormal
		err error
	)
	switch strings.ToLower(filepath.Ext(body.Path)) {
	case ".xlsx":
		ns, err = loader.LoadXLSX(body.Path, body.Sheet)
	default:
		ns, err = loader.LoadCSV(body.Path)
	}
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	saved, err := h.repo.BulkUpsert(ns)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"parsed": len(ns), "saved": saved})
}

func (h *RainCtrl) IngestURL(c echo.Context) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}

	ns, err := ingest.FromURL(body.URL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	saved, err := h.repo.BulkUpsert(ns)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"parsed": len(ns), "saved": saved})
}
