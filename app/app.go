package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hardware-mapper/app/controller"
	"hardware-mapper/app/router"
	"hardware-mapper/catalog"
	"hardware-mapper/config"
	"hardware-mapper/db"
	"hardware-mapper/geometry"
	"hardware-mapper/repository"
	"hardware-mapper/service"
)

// App holds the wired dependencies shared by the server and the CLI commands
type App struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Resolver   *geometry.Resolver
	Repository repository.MappingRepositoryInterface
	Images     *service.BoardImageService
	Sheets     *service.SheetService
}

// Initialize wires the catalog, the mapping store and the image services
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var repo repository.MappingRepositoryInterface
	if cfg.DatabaseURL != "" {
		if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = repository.NewMappingRepository()
	} else {
		log.Printf("⚠️  No database configured, storing mappings in %s", cfg.MappingsFile)
		repo = repository.NewFileMappingRepository(cfg.MappingsFile)
	}

	var drive service.DriveServiceInterface
	if cfg.DriveCredentials != "" {
		driveService, err := service.NewDriveService(ctx, cfg.DriveCredentials)
		if err != nil {
			return nil, err
		}
		drive = driveService
	}

	images := service.NewBoardImageService(cfg.ImageDir, drive, cfg.ImageCacheDir)
	resolver := geometry.NewResolver(geometry.DefaultWidth)
	for _, board := range cat.ListBoards() {
		// a missing photo keeps the fallback ratio
		_ = resolver.LoadRatio(ctx, board, images)
	}

	return &App{
		Config:     cfg,
		Catalog:    cat,
		Resolver:   resolver,
		Repository: repo,
		Images:     images,
		Sheets:     service.NewSheetService(cat, resolver, images, cfg.ChromePath),
	}, nil
}

// Handler builds the HTTP API: registry, catalog, wiring sheets and the MCP endpoint
func (a *App) Handler() http.Handler {
	mcpServer := service.NewMCPServer(a.Catalog, a.Repository).Server()

	controllers := &router.Controllers{
		Mapping: controller.NewMappingController(a.Repository),
		Board:   controller.NewBoardController(a.Catalog, a.Resolver, a.Repository, a.Sheets, a.Images),
		MCP: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	return mux
}

// Close releases the database connection
func (a *App) Close() error {
	return db.CloseDB()
}
