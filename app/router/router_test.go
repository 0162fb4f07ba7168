package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardware-mapper/app/controller"
	"hardware-mapper/app/router"
	"hardware-mapper/catalog"
	"hardware-mapper/geometry"
	"hardware-mapper/models"
	"hardware-mapper/repository"
	"hardware-mapper/service"
)

func newServer(t *testing.T) (*httptest.Server, repository.MappingRepositoryInterface) {
	t.Helper()

	cat := catalog.Default()
	resolver := geometry.NewResolver(geometry.DefaultWidth)
	repo := repository.NewFileMappingRepository(filepath.Join(t.TempDir(), "mappings.json"))
	sheets := service.NewSheetService(cat, resolver, nil, "")

	mux := http.NewServeMux()
	router.SetupRoutes(mux, &router.Controllers{
		Mapping: controller.NewMappingController(repo),
		Board:   controller.NewBoardController(cat, resolver, repo, sheets, nil),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, repo
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRegistryRoutes(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/mappings", `{"mappings":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/mappings",
		`{"mappings":[{"id":"a","boardId":"pi5","partId":"led","role":"Light","pins":[11]},{"id":"b","boardId":"leonardo","partId":"led","role":"Light","pins":["A0"]}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var saved models.SaveMappingsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.Equal(t, models.SaveMappingsResponse{OK: true, Count: 2}, saved)

	resp = do(t, http.MethodPost, srv.URL+"/mappings",
		`{"mappings":[{"id":"a","boardId":"pi5","partId":"led","role":"Light","pins":[13],"label":"moved"}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/mappings", "")
	var batch models.MappingBatch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	require.Len(t, batch.Mappings, 2)
	assert.Equal(t, []models.PinID{models.PinNumber(13)}, batch.Mappings[0].Pins)
	assert.Equal(t, "moved", batch.Mappings[0].Label)

	resp = do(t, http.MethodDelete, srv.URL+"/mappings/a", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodDelete, srv.URL+"/mappings/a", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/mappings", `{"mappings":[{"id":"z","boardId":"pi40","partId":"relay","role":"Switch","pins":[16]}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodGet, srv.URL+"/mappings", "")
	batch = models.MappingBatch{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	require.Len(t, batch.Mappings, 1)
	assert.Equal(t, "z", batch.Mappings[0].ID)

	resp = do(t, http.MethodDelete, srv.URL+"/mappings", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPatch, srv.URL+"/mappings", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRegistryRoutes_WorkWithRegistryClient(t *testing.T) {
	t.Parallel()

	srv, repo := newServer(t)
	ctx := context.Background()

	reg := service.NewMappingRegistry(service.NewRegistryClient(srv.URL, srv.Client()))
	reg.Add(models.Mapping{ID: "a", BoardID: "pi5", PartID: "dht22", Role: "Temperature", Pins: []models.PinID{models.PinNumber(7)}})
	reg.Add(models.Mapping{ID: "b", BoardID: "pi5", PartID: "led", Role: "Light", Pins: []models.PinID{models.PinNumber(11)}})

	_, err := reg.SaveAll(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, reg.Remove(ctx, "a"))
	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "b", stored[0].ID)

	fresh := service.NewMappingRegistry(service.NewRegistryClient(srv.URL, srv.Client()))
	require.NoError(t, fresh.Seed(ctx))
	assert.Equal(t, reg.List(), fresh.List())
}

func TestCatalogRoutes(t *testing.T) {
	t.Parallel()

	srv, repo := newServer(t)
	require.NoError(t, repo.Upsert(context.Background(), []models.Mapping{
		{ID: "a", BoardID: "pi5", PartID: "led", Role: "Light", Pins: []models.PinID{models.PinNumber(11)}},
		{ID: "b", BoardID: "pi40", PartID: "led", Role: "Light", Pins: []models.PinID{models.PinNumber(13)}},
	}))

	resp := do(t, http.MethodGet, srv.URL+"/boards", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var boards struct {
		Boards []models.BoardDefinition `json:"boards"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boards))
	assert.Len(t, boards.Boards, 3)

	resp = do(t, http.MethodGet, srv.URL+"/parts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/boards/pi5/pins?width=500&ratio=0.5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var layout struct {
		Width  float64              `json:"width"`
		Height float64              `json:"height"`
		Radius float64              `json:"radius"`
		Pins   []models.PinPosition `json:"pins"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&layout))
	assert.Equal(t, 500.0, layout.Width)
	assert.Equal(t, 250.0, layout.Height)
	require.Len(t, layout.Pins, 40)
	disabled := map[int]bool{}
	for _, p := range layout.Pins {
		disabled[p.Number] = p.Disabled
	}
	assert.True(t, disabled[2], "reserved")
	assert.True(t, disabled[11], "mapped on this board")
	assert.False(t, disabled[13], "mapped on another board")

	for _, query := range []string{"width=abc", "width=0", "width=1e308", "width=NaN", "ratio=-1", "ratio=1e308", "ratio=Inf"} {
		resp = do(t, http.MethodGet, srv.URL+"/boards/pi5/pins?"+query, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}

	resp = do(t, http.MethodGet, srv.URL+"/boards/esp32/pins", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/boards/pi5/sheet", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = do(t, http.MethodGet, srv.URL+"/boards/pi5/image", "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/boards/pi5/other", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
