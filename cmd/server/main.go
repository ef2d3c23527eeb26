package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"rwh/config"
	"rwh/database"
	"rwh/entities"
	"rwh/router"

	// Assessment
	assessCtrlImp "rwh/pkg/assessment/controllerImp"
	assessSvc "rwh/pkg/assessment/serviceImp"

	// Rainfall climatology
	rainCtrlImp "rwh/pkg/rainfall/controllerImp"
	"rwh/pkg/rainfall/loader"
	rainRepository "rwh/pkg/rainfall/repository"
	rainRepoImp "rwh/pkg/rainfall/repositoryImp"

	// Policy + remote
	"rwh/pkg/compliance"
	"rwh/pkg/remote"

	// Health
	healthCtrlImp "rwh/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate + seed
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Rainfall store, with optional dataset import at startup
	rainRepo := rainRepoImp.New(db)
	if cfg.RainfallDataset != "" {
		importDataset(rainRepo, cfg.RainfallDataset)
	}

	// 4) Compliance catalog (YAML override or built-in)
	catalog, err := compliance.LoadCatalog(cfg.ComplianceCatalog)
	if err != nil {
		log.Printf("[cfg] compliance catalog warn: %v (using defaults)", err)
		catalog = compliance.DefaultCatalog()
	}

	// 5) Remote assessment API (disabled fallback when unconfigured)
	var rc remote.Client
	if cfg.RemoteEndpoint != "" {
		rc = remote.NewHTTP(cfg.RemoteEndpoint, cfg.RemoteAPIKey, time.Duration(cfg.RemoteTimeoutSecs)*time.Second)
	} else {
		rc = remote.NewDisabled()
		log.Printf("[assess] no remote endpoint configured, assessments compute locally")
	}

	// 6) Services + controllers
	svc := assessSvc.New(rainRepo, rc, catalog)
	assessCtrl := assessCtrlImp.New(svc)
	rainCtrl := rainCtrlImp.New(rainRepo)
	healthCtrl := healthCtrlImp.New(db, cfg.RemoteEndpoint)

	// 7) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	router.New(e, assessCtrl, rainCtrl, healthCtrl)

	log.Fatal(e.Start(":" + cfg.Port))
}

func importDataset(repo rainRepository.RainfallRepository, path string) {
	var (
		ns  []entities.RainfallNormal
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		ns, err = loader.LoadXLSX(path, "")
	} else {
		ns, err = loader.LoadCSV(path)
	}
	if err != nil {
		log.Printf("[rainfall] dataset warn: %v", err)
		return
	}
	saved, err := repo.BulkUpsert(ns)
	if err != nil {
		log.Printf("[rainfall] dataset import stopped after %d rows: %v", saved, err)
		return
	}
	log.Printf("[rainfall] imported %d rows from %s", saved, path)
}
