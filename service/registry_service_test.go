package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardware-mapper/models"
	"hardware-mapper/service"
)

func TestMappingRegistry_AddKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	reg := service.NewMappingRegistry(&fakeExternal{})
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))
	reg.Add(sampleMapping("b", "Humidity", models.PinNumber(11)))

	got := reg.List()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, models.MappingCommitted, reg.State("a"))
	assert.Equal(t, models.MappingAbsent, reg.State("zzz"))

	got[0].ID = "mutated"
	assert.Equal(t, "a", reg.List()[0].ID)
}

func TestMappingRegistry_RemoveIsOptimistic(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))
	reg.Add(sampleMapping("b", "Humidity", models.PinNumber(11)))

	var during models.MappingState
	var localDuring int
	ext.onDelete = func(id string) {
		during = reg.State(id)
		localDuring = len(reg.List())
	}

	require.NoError(t, reg.Remove(context.Background(), "a"))

	assert.Equal(t, models.MappingPendingRemove, during)
	assert.Equal(t, 1, localDuring, "local removal happens before the remote call")
	assert.Equal(t, []string{"a"}, ext.deleted)
	assert.Equal(t, models.MappingAbsent, reg.State("a"))

	got := reg.List()
	require.Len(t, got, 1)
	for _, m := range got {
		assert.NotEqual(t, "a", m.ID)
	}
}

func TestMappingRegistry_RemoveFailureIsNotRolledBack(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{deleteErr: errors.New("503 Service Unavailable")}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	err := reg.Remove(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Delete failed")
	assert.Empty(t, reg.List())
	assert.Equal(t, models.MappingAbsent, reg.State("a"))
}

func TestMappingRegistry_RemoveUnknownID(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	err := reg.Remove(context.Background(), "missing")
	require.ErrorIs(t, err, service.ErrMappingNotInSession)
	assert.Len(t, reg.List(), 1)
	assert.Empty(t, ext.deleted)
}

func TestMappingRegistry_SaveAllEmptyContactsNobody(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	tools := &fakeTools{tools: []models.Tool{{Name: "register_mapping"}}}
	reg := service.NewMappingRegistry(ext)

	res, err := reg.SaveAll(context.Background(), tools)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Equal(t, "No mappings to save. Add some hardware mappings first.", res.Message)
	assert.Zero(t, ext.replaced)
	assert.Empty(t, tools.calls)
}

func TestMappingRegistry_SaveAllCallsToolAndRegistry(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	tools := &fakeTools{tools: []models.Tool{
		{Name: "read_temperature"},
		{Name: "Register-Mapping"},
		{Name: "register_mapping"},
	}}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	res, err := reg.SaveAll(context.Background(), tools)
	require.NoError(t, err)

	require.Len(t, tools.calls, 1)
	assert.Equal(t, "Register-Mapping", tools.calls[0].Name, "first match in catalog order")
	assert.Equal(t, reg.List(), tools.calls[0].Args["mappings"])

	assert.Equal(t, 1, ext.replaced)
	assert.Equal(t, reg.List(), ext.stored)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Register-Mapping", res.ToolName)
	assert.Contains(t, res.Message, "Mappings sent to MCP (Register-Mapping).")
}

func TestMappingRegistry_SaveAllToolFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	tools := &fakeTools{tools: []models.Tool{{Name: "registerMapping"}}, callErr: errors.New("bridge down")}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	res, err := reg.SaveAll(context.Background(), tools)
	require.NoError(t, err)
	require.Error(t, res.ToolErr)
	assert.Contains(t, res.Message, "bridge down")
	assert.Equal(t, 1, ext.replaced)
}

func TestMappingRegistry_SaveAllToolErrorResultIsNotFatal(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	tools := &fakeTools{
		tools:  []models.Tool{{Name: "register_mapping"}},
		result: &models.ToolResult{Text: "schema mismatch", IsError: true},
	}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	res, err := reg.SaveAll(context.Background(), tools)
	require.NoError(t, err)
	require.Error(t, res.ToolErr)
	assert.Contains(t, res.Message, "schema mismatch")
}

func TestMappingRegistry_SaveAllWithoutTool(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	res, err := reg.SaveAll(context.Background(), &fakeTools{tools: []models.Tool{{Name: "gpio_write"}}})
	require.NoError(t, err)
	assert.Empty(t, res.ToolName)
	assert.Contains(t, res.Message, "No register_mapping tool found")
	assert.Equal(t, 1, ext.replaced)

	res, err = reg.SaveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "No register_mapping tool found")
}

func TestMappingRegistry_SaveAllRegistryFailureIsFatal(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{saveErr: errors.New("Registry POST failed (500)")}
	tools := &fakeTools{tools: []models.Tool{{Name: "register_mapping"}}}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	res, err := reg.SaveAll(context.Background(), tools)
	require.Error(t, err)
	assert.Contains(t, res.Message, "Save failed: ")
	assert.Contains(t, res.Message, "Registry POST failed (500)")
	assert.Len(t, reg.List(), 1, "local collection is kept")
}

func TestMappingRegistry_SaveAllRegistryFailureLetsToolFinish(t *testing.T) {
	t.Parallel()

	registryDone := make(chan struct{})
	ext := &fakeExternal{
		saveErr:   errors.New("registry down"),
		onReplace: func() { close(registryDone) },
	}

	var toolCtxErr error
	tools := &fakeTools{
		tools: []models.Tool{{Name: "register_mapping"}},
		onCall: func(ctx context.Context) error {
			<-registryDone
			select {
			case <-ctx.Done():
			case <-time.After(100 * time.Millisecond):
			}
			toolCtxErr = ctx.Err()
			return nil
		},
	}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("a", "Temperature", models.PinNumber(7)))

	res, err := reg.SaveAll(context.Background(), tools)
	require.Error(t, err)
	assert.Contains(t, res.Message, "registry down")

	assert.NoError(t, toolCtxErr, "register_mapping call must not be cancelled by the registry failure")
	require.Len(t, tools.calls, 1)
	assert.NoError(t, res.ToolErr)
	assert.Equal(t, "register_mapping", res.ToolName)
}

func TestMappingRegistry_SeedAndReset(t *testing.T) {
	t.Parallel()

	ext := &fakeExternal{stored: []models.Mapping{
		sampleMapping("x", "Temperature", models.PinNumber(7)),
		sampleMapping("y", "Humidity", models.PinName("A0")),
	}}
	reg := service.NewMappingRegistry(ext)
	reg.Add(sampleMapping("local", "Temperature", models.PinNumber(11)))

	require.NoError(t, reg.Seed(context.Background()))
	got := reg.List()
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)

	reg.Reset()
	assert.Empty(t, reg.List())
	assert.Len(t, ext.stored, 2, "reset is local only")

	ext.listErr = errors.New("connection refused")
	require.Error(t, reg.Seed(context.Background()))
}
