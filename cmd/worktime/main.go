package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrfop/worktime/internal/cli"
	"github.com/mrfop/worktime/internal/config"
	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/repository"
	"github.com/mrfop/worktime/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	segmentRepo := repository.NewSQLiteSegmentRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("WORKTIME_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	sessionSvc := service.NewSessionService(sessionRepo, uow, observer)
	segmentSvc := service.NewSegmentService(segmentRepo, uow, observer)
	reportSvc := service.NewReportService(sessionRepo)

	app := &cli.App{
		Sessions:   sessionSvc,
		Segments:   segmentSvc,
		Categories: service.NewCategoryService(categoryRepo),
		Activities: service.NewActivityService(activityRepo),
		Reports:    reportSvc,
		Exports:    service.NewExportService(reportSvc, sessionSvc, segmentSvc, observer),
		Config:     cfg,
	}

	return cli.NewRootCmd(app).Execute()
}
