package service_test

import (
	"context"
	"sync"

	"hardware-mapper/models"
)

type fakeExternal struct {
	mu        sync.Mutex
	stored    []models.Mapping
	deleted   []string
	replaced  int
	listErr   error
	deleteErr error
	saveErr   error
	onDelete  func(id string)
	onReplace func()
}

func (f *fakeExternal) List(_ context.Context) ([]models.Mapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Mapping{}, f.stored...), nil
}

func (f *fakeExternal) ReplaceAll(_ context.Context, mappings []models.Mapping) error {
	if f.onReplace != nil {
		defer f.onReplace()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = append([]models.Mapping{}, mappings...)
	return nil
}

func (f *fakeExternal) DeleteByID(_ context.Context, id string) error {
	if f.onDelete != nil {
		f.onDelete(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type toolCall struct {
	Name string
	Args map[string]any
}

type fakeTools struct {
	mu      sync.Mutex
	tools   []models.Tool
	calls   []toolCall
	result  *models.ToolResult
	callErr error
	listErr error
	onCall  func(ctx context.Context) error
}

func (f *fakeTools) ListTools(_ context.Context) ([]models.Tool, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tools, nil
}

func (f *fakeTools) CallTool(ctx context.Context, name string, args map[string]any) (*models.ToolResult, error) {
	if f.onCall != nil {
		if err := f.onCall(ctx); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, toolCall{Name: name, Args: args})
	if f.callErr != nil {
		return nil, f.callErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &models.ToolResult{Text: "ok"}, nil
}

func toolWithParams(name string, params ...string) models.Tool {
	props := map[string]any{}
	for _, p := range params {
		props[p] = map[string]any{"type": "string"}
	}
	return models.Tool{Name: name, InputSchema: map[string]any{"type": "object", "properties": props}}
}

func sampleMapping(id, role string, pins ...models.PinID) models.Mapping {
	return models.Mapping{ID: id, BoardID: "pi5", PartID: "dht22", Role: role, Pins: pins}
}
