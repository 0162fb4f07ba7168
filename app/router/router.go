package router

import (
	"net/http"
	"strings"

	"hardware-mapper/app/controller"
)

type Controllers struct {
	Mapping *controller.MappingController
	Board   *controller.BoardController
	// MCP serves the streamable MCP endpoint when set
	MCP http.Handler
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Registry routes
	mux.HandleFunc("/health", controllers.Mapping.Health)

	// Mapping collection - GET (list), POST (merge), PUT (replace all), DELETE (clear)
	mux.HandleFunc("/mappings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Mapping.ListMappings(w, r)
		case http.MethodPost:
			controllers.Mapping.AddMappings(w, r)
		case http.MethodPut:
			controllers.Mapping.ReplaceMappings(w, r)
		case http.MethodDelete:
			controllers.Mapping.ClearMappings(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Delete one mapping
	mux.HandleFunc("/mappings/", controllers.Mapping.DeleteMapping)

	// Catalog routes
	mux.HandleFunc("/boards", controllers.Board.ListBoards)
	mux.HandleFunc("/parts", controllers.Board.ListParts)

	// Board sub-resources: /boards/:id/pins, /boards/:id/sheet, /boards/:id/image
	mux.HandleFunc("/boards/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/boards/")
		switch {
		case strings.HasSuffix(path, "/pins"):
			controllers.Board.GetPins(w, r)
		case strings.HasSuffix(path, "/sheet"):
			controllers.Board.GetSheet(w, r)
		case strings.HasSuffix(path, "/image"):
			controllers.Board.GetImage(w, r)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})

	if controllers.MCP != nil {
		mux.Handle("/mcp", controllers.MCP)
	}
}
