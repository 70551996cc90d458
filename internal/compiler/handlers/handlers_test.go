package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scene-compiler/internal/compiler/mapper"
	"scene-compiler/internal/compiler/models"
	"scene-compiler/internal/compiler/repository"

	"github.com/gofiber/fiber/v3"
)

const layoutSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect id="hall" x="0" y="0" width="50" height="50"/>
  <line x1="50" y1="20" x2="50" y2="30"/>
</svg>`

type memoryStore struct {
	scenes map[string]*models.Output
	saved  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{scenes: map[string]*models.Output{}}
}

func (m *memoryStore) Save(_ context.Context, name string, out *models.Output) (string, error) {
	m.saved++
	id := name + "-id"
	m.scenes[id] = out
	return id, nil
}

func (m *memoryStore) GetByID(_ context.Context, id string) (*repository.StoredScene, error) {
	out, ok := m.scenes[id]
	if !ok {
		return nil, models.ErrSceneNotFound
	}
	return &repository.StoredScene{ID: id, Output: out}, nil
}

func (m *memoryStore) List(_ context.Context) ([]repository.SceneSummary, error) {
	list := []repository.SceneSummary{}
	for id, out := range m.scenes {
		list = append(list, repository.SceneSummary{ID: id, Walls: len(out.Walls)})
	}
	return list, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	if _, ok := m.scenes[id]; !ok {
		return models.ErrSceneNotFound
	}
	delete(m.scenes, id)
	return nil
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("down") }

func newApp(t *testing.T, store SceneStore, db Pinger) *fiber.App {
	t.Helper()
	c, err := mapper.New(models.DefaultOptions())
	if err != nil {
		t.Fatalf("new compiler: %v", err)
	}
	app := fiber.New()
	Register(app,
		NewCompileHandler(c, store, models.Canvas{Width: 200, Height: 200}),
		NewHealthHandler(db),
	)
	return app
}

func multipartRequest(t *testing.T, svg string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if svg != "" {
		part, err := w.CreateFormFile("file", "layout.svg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(svg)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/compile", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCompileReturnsOutput(t *testing.T) {
	app := newApp(t, nil, nil)
	rooms := `[{"id":"hall","name":"Great Hall","readAloud":"Dusty."}]`

	resp, err := app.Test(multipartRequest(t, layoutSVG, map[string]string{"rooms": rooms}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out compileResponse
	decode(t, resp, &out)
	if out.Output == nil {
		t.Fatal("output missing")
	}
	if len(out.Lights) != 1 || len(out.Notes) != 1 {
		t.Fatalf("lights=%d notes=%d, want 1 and 1", len(out.Lights), len(out.Notes))
	}
	if out.Notes[0].Label != "Great Hall" {
		t.Errorf("label = %q", out.Notes[0].Label)
	}
	if out.ID != "" {
		t.Errorf("id = %q without store", out.ID)
	}
	// viewBox 100 onto canvas 200.
	if out.Lights[0].X != 50 || out.Lights[0].Y != 50 {
		t.Errorf("light at (%v,%v), want (50,50)", out.Lights[0].X, out.Lights[0].Y)
	}
}

func TestCompileCanvasOverride(t *testing.T) {
	app := newApp(t, nil, nil)
	resp, err := app.Test(multipartRequest(t, layoutSVG, map[string]string{
		"canvas_width":  "100",
		"canvas_height": "100",
	}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	var out compileResponse
	decode(t, resp, &out)
	if out.Transform.ScaleX != 1 || out.Transform.ScaleY != 1 {
		t.Errorf("transform = %+v, want unit scale", out.Transform)
	}
}

func TestCompileMissingFile(t *testing.T) {
	app := newApp(t, nil, nil)
	resp, err := app.Test(multipartRequest(t, "", map[string]string{"rooms": "[]"}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCompileInvalidRooms(t *testing.T) {
	app := newApp(t, nil, nil)
	resp, err := app.Test(multipartRequest(t, layoutSVG, map[string]string{"rooms": "{broken"}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCompileNotSVG(t *testing.T) {
	app := newApp(t, nil, nil)
	resp, err := app.Test(multipartRequest(t, "<html></html>", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestCompileStoresScene(t *testing.T) {
	store := newMemoryStore()
	app := newApp(t, store, nil)

	resp, err := app.Test(multipartRequest(t, layoutSVG, map[string]string{"store": "true"}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	var out compileResponse
	decode(t, resp, &out)
	if out.ID != "layout.svg-id" || store.saved != 1 {
		t.Fatalf("id = %q, saved = %d", out.ID, store.saved)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/scenes/"+out.ID, nil))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/scenes/"+out.ID+"/preview", nil))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("preview content type = %q", ct)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/scenes/"+out.ID, nil))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/scenes/"+out.ID, nil))
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", resp.StatusCode)
	}
}

func TestScenesWithoutStore(t *testing.T) {
	app := newApp(t, nil, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scenes", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestPreviewRendersSVG(t *testing.T) {
	app := newApp(t, nil, nil)
	payload := `{"walls":[{"coordinates":[0,0,10,0],"isDoor":false}],"lights":[],"notes":[]}`

	req := httptest.NewRequest(http.MethodPost, "/preview?width=20&height=20", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `width="20"`) || !strings.Contains(string(body), "<line") {
		t.Errorf("unexpected svg: %s", body)
	}
}

func TestPreviewRejectsBadJSON(t *testing.T) {
	app := newApp(t, nil, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader("{")))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestReadiness(t *testing.T) {
	resp, err := newApp(t, nil, nil).Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	resp, err = newApp(t, nil, failingPinger{}).Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}
