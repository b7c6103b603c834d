package app

import (
	"context"
	"fmt"
	"net/http"

	"catalog-studio/app/controller"
	"catalog-studio/app/router"
	"catalog-studio/config"
	"catalog-studio/db"
	"catalog-studio/models"
	"catalog-studio/repository"
	"catalog-studio/service"
)

// Initialize opens the stores, loads the project and wires the
// application together. Returns the HTTP handler to serve.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	if err := db.InitDB(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize stores: %w", err)
	}

	blobRepo := repository.NewBlobRepository(db.BlobDB)
	projectRepo := repository.NewProjectRepository(db.CatalogDB)

	projectService := service.NewProjectService(projectRepo, blobRepo)
	if err := projectService.Init(ctx); err != nil {
		return nil, err
	}

	imageService := service.NewImageService(blobRepo, cfg.CacheDir)
	renderService := service.NewRenderService(cfg.Export)
	exportService := service.NewExportService(projectService, imageService, renderService, cfg.BaseURL, cfg.ChromePath)

	controllers := &router.Controllers{
		Project: controller.NewProjectController(projectService),
		Product: controller.NewProductController(projectService),
		Color:   controller.NewColorController(projectService),
		Image:   controller.NewImageController(blobRepo, imageService),
		Export:  controller.NewExportController(exportService, models.Theme(cfg.Export.DefaultTheme)),
	}

	return router.New(controllers), nil
}
