package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardware-mapper/catalog"
	"hardware-mapper/engine"
	"hardware-mapper/models"
	"hardware-mapper/service"
)

func newWorkbench(t *testing.T, ext service.ExternalRegistry, mode engine.SelectionMode, boardID, partID string) (*service.Workbench, *service.MappingRegistry) {
	t.Helper()
	reg := service.NewMappingRegistry(ext)
	wb, err := service.NewWorkbench(catalog.Default(), reg, nil, mode, boardID, partID)
	require.NoError(t, err)
	return wb, reg
}

func TestWorkbench_Defaults(t *testing.T) {
	t.Parallel()

	wb, _ := newWorkbench(t, &fakeExternal{}, engine.SingleMode, "", "")
	assert.Equal(t, "pi5", wb.Board().ID)
	assert.Equal(t, wb.Part().Roles[0], wb.Role())
	assert.Empty(t, wb.Selected())

	_, err := service.NewWorkbench(catalog.Default(), service.NewMappingRegistry(&fakeExternal{}), nil, engine.SingleMode, "esp32", "")
	require.ErrorIs(t, err, catalog.ErrUnknownBoard)
}

func TestWorkbench_EndToEndPi5DHT22(t *testing.T) {
	t.Parallel()

	wb, reg := newWorkbench(t, &fakeExternal{}, engine.SingleMode, "pi5", "dht22")
	require.NoError(t, wb.SelectRole("Temperature"))

	assert.Contains(t, wb.Disabled(), 2)
	assert.False(t, wb.Toggle(2), "reserved 5V pin is never selectable")
	assert.Empty(t, wb.Selected())

	require.True(t, wb.Toggle(7))
	assert.Equal(t, models.MappingPendingAdd, wb.State())

	m, err := wb.Add()
	require.NoError(t, err)
	assert.Equal(t, []models.PinID{models.PinNumber(7)}, m.Pins)
	assert.Equal(t, "Temperature", m.Role)
	assert.Empty(t, wb.Selected())
	assert.Equal(t, models.MappingAbsent, wb.State())

	require.NoError(t, wb.SelectPart("led"))
	assert.False(t, wb.Toggle(7), "pin 7 is now disabled")

	layout := wb.Layout()
	pin7, ok := layout.Pin(7)
	require.True(t, ok)
	assert.True(t, pin7.Disabled)
	pin8, ok := layout.Pin(8)
	require.True(t, ok)
	assert.False(t, pin8.Disabled)

	_, err = wb.Add()
	require.Error(t, err)
	assert.Equal(t, "Select exactly 1 pin for LED.", wb.Message())
	assert.Len(t, reg.List(), 1)
}

func TestWorkbench_SelectPartResetsRoleAndSelection(t *testing.T) {
	t.Parallel()

	wb, _ := newWorkbench(t, &fakeExternal{}, engine.SingleMode, "pi5", "dht22")
	require.NoError(t, wb.SelectRole("Humidity"))
	require.True(t, wb.Toggle(11))

	require.NoError(t, wb.SelectPart("relay"))
	assert.Equal(t, "Switch", wb.Role())
	assert.Empty(t, wb.Selected())

	require.Error(t, wb.SelectRole("Humidity"))
	require.ErrorIs(t, wb.SelectPart("nope"), catalog.ErrUnknownPart)
}

func TestWorkbench_MultiModeUltrasonic(t *testing.T) {
	t.Parallel()

	wb, _ := newWorkbench(t, &fakeExternal{}, engine.MultiMode, "pi5", "hcsr04")
	require.True(t, wb.Toggle(16))
	assert.Equal(t, models.MappingAbsent, wb.State())
	require.True(t, wb.Toggle(18))
	assert.False(t, wb.Toggle(22), "selection is full")

	m, err := wb.Add()
	require.NoError(t, err)
	assert.Equal(t, []models.PinID{models.PinNumber(16), models.PinNumber(18)}, m.Pins)
}

func TestWorkbench_RemoveAndSaveMessages(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	wb, reg := newWorkbench(t, ext, engine.SingleMode, "pi5", "led")

	res, err := wb.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Equal(t, "No mappings to save. Add some hardware mappings first.", wb.Message())

	require.True(t, wb.Toggle(11))
	m, err := wb.Add()
	require.NoError(t, err)

	_, err = wb.Save(context.Background(), &fakeTools{})
	require.NoError(t, err)
	assert.Contains(t, wb.Message(), "Saved 1 mapping(s)")

	require.NoError(t, wb.Remove(context.Background(), m.ID))
	assert.Equal(t, "Mapping deleted.", wb.Message())
	assert.Empty(t, reg.List())

	ext.deleteErr = errors.New("404 Not Found")
	require.True(t, wb.Toggle(11))
	m, err = wb.Add()
	require.NoError(t, err)
	require.Error(t, wb.Remove(context.Background(), m.ID))
	assert.Contains(t, wb.Message(), "Delete failed: ")
	assert.Empty(t, reg.List())
}

func TestWorkbench_GenerateFailureKeepsMappings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	wb, reg := newWorkbench(t, &fakeExternal{}, engine.SingleMode, "leonardo", "led")

	_, err := wb.Generate(context.Background(), service.NewCodegenClient(srv.URL, srv.Client()))
	require.Error(t, err, "nothing mapped yet")

	require.True(t, wb.Toggle(5))
	_, err = wb.Add()
	require.NoError(t, err)
	before := reg.List()

	_, err = wb.Generate(context.Background(), service.NewCodegenClient(srv.URL, srv.Client()))
	require.Error(t, err)
	assert.Contains(t, wb.Message(), "Generate failed")
	assert.Equal(t, before, reg.List())
	assert.Equal(t, []models.PinID{models.PinNumber(13)}, before[0].Pins)
}
