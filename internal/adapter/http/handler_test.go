package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-customizer/internal/adapter/repository"
	"portfolio-customizer/internal/usecase"
	"portfolio-customizer/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Jane Doe</title></head>
<body>
<section id="home"><h1>Jane Doe</h1><p class="bio">Go engineer</p></section>
<section id="projects" class="grid gap-4"><div class="card"><h3>One</h3></div></section>
<footer><a href="https://www.github.com/jane">GitHub</a></footer>
</body>
</html>`

type stubGenerator struct {
	out string
	err error
}

func (g stubGenerator) GenerateHTML(context.Context, string, string) (string, error) {
	return g.out, g.err
}

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

func newTestApp(gen usecase.Generator) *fiber.App {
	svc := usecase.NewService(repository.NewMemoryRepo(), gen, stubRenderer{}, extract.New(1<<20, nil))
	app := fiber.New()
	NewHandler(svc, nil).Register(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

type view struct {
	SessionID   string `json:"sessionId"`
	PortfolioID string `json:"portfolioId"`
	Theme       string `json:"theme"`
	CanUndo     bool   `json:"canUndo"`
	CanRedo     bool   `json:"canRedo"`
	HistoryLen  int    `json:"historyLength"`
	Cursor      int    `json:"cursor"`
	HTML        string `json:"html"`
	Selection   *struct {
		Tag     string            `json:"tag"`
		Path    []string          `json:"path"`
		Styles  map[string]string `json:"styles"`
		Content string            `json:"content"`
	} `json:"selection"`
}

func decodeView(t *testing.T, b []byte) view {
	t.Helper()
	var v view
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func errorOf(t *testing.T, b []byte) string {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m), string(b))
	s, _ := m["error"].(string)
	return s
}

func openSession(t *testing.T, app *fiber.App) view {
	t.Helper()
	status, body := do(t, app, fiber.MethodPost, "/sessions", map[string]string{"html": page})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	return decodeView(t, body)
}

func TestEditingFlow(t *testing.T) {
	app := newTestApp(stubGenerator{})
	v := openSession(t, app)
	base := "/sessions/" + v.SessionID
	assert.Equal(t, 1, v.HistoryLen)
	assert.Nil(t, v.Selection)

	status, body := do(t, app, fiber.MethodPost, base+"/select", map[string]interface{}{
		"path": []string{"body", "section#home", "h1"},
	})
	require.Equal(t, fiber.StatusOK, status, string(body))
	v = decodeView(t, body)
	require.NotNil(t, v.Selection)
	assert.Equal(t, "h1", v.Selection.Tag)
	assert.Equal(t, []string{"body", "section#home", "h1"}, v.Selection.Path)

	status, body = do(t, app, fiber.MethodPatch, base+"/style", map[string]string{"property": "fontSize", "value": "40px"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	v = decodeView(t, body)
	assert.Equal(t, "40px", v.Selection.Styles["font-size"])
	assert.Equal(t, 2, v.HistoryLen)

	status, body = do(t, app, fiber.MethodPut, base+"/content", map[string]string{"content": "Jane Q. Doe"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	v = decodeView(t, body)
	assert.Contains(t, v.HTML, "Jane Q. Doe")
	assert.NotContains(t, v.HTML, "portfolio-element-selected")

	status, body = do(t, app, fiber.MethodPost, base+"/undo", nil)
	require.Equal(t, fiber.StatusOK, status)
	v = decodeView(t, body)
	assert.Equal(t, 1, v.Cursor)
	assert.True(t, v.CanRedo)
	assert.NotContains(t, v.HTML, "Jane Q. Doe")

	status, body = do(t, app, fiber.MethodPost, base+"/redo", nil)
	require.Equal(t, fiber.StatusOK, status)
	v = decodeView(t, body)
	assert.Equal(t, 2, v.Cursor)
	assert.False(t, v.CanRedo)

	status, body = do(t, app, fiber.MethodPost, base+"/theme", map[string]string{"name": "Cyberpunk"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "Cyberpunk", decodeView(t, body).Theme)

	status, body = do(t, app, fiber.MethodPost, base+"/theme", map[string]string{"name": "Neon"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, errorOf(t, body), "Neon")
}

func TestContainerOperations(t *testing.T) {
	app := newTestApp(stubGenerator{})
	base := "/sessions/" + openSession(t, app).SessionID

	status, body := do(t, app, fiber.MethodPost, base+"/clone", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Please select an element first", errorOf(t, body))

	status, _ = do(t, app, fiber.MethodPost, base+"/select", map[string]interface{}{"path": []string{"body", "section#projects"}})
	require.Equal(t, fiber.StatusOK, status)

	status, body = do(t, app, fiber.MethodPost, base+"/clone", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, 2, strings.Count(decodeView(t, body).HTML, `class="card"`))

	status, body = do(t, app, fiber.MethodPost, base+"/templates", map[string]string{"kind": "skill"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Contains(t, decodeView(t, body).HTML, "New Skill")

	status, _ = do(t, app, fiber.MethodDelete, base+"/element", nil)
	assert.Equal(t, fiber.StatusBadRequest, status, "removal needs confirmation")

	status, body = do(t, app, fiber.MethodDelete, base+"/element?confirm=true", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	v := decodeView(t, body)
	assert.NotContains(t, v.HTML, `id="projects"`)
	assert.Equal(t, "body", v.Selection.Tag)

	status, body = do(t, app, fiber.MethodDelete, base+"/element?confirm=true", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "This element cannot be removed", errorOf(t, body))
}

func TestAttributesAndLinks(t *testing.T) {
	app := newTestApp(stubGenerator{})
	base := "/sessions/" + openSession(t, app).SessionID

	status, _ := do(t, app, fiber.MethodPost, base+"/select", map[string]interface{}{"path": []string{"body", "footer", "a"}})
	require.Equal(t, fiber.StatusOK, status)

	status, body := do(t, app, fiber.MethodPut, base+"/attributes", map[string]string{"name": "href", "value": "https://gitlab.com/jane"})
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = do(t, app, fiber.MethodGet, base+"/links", nil)
	require.Equal(t, fiber.StatusOK, status)
	var links []struct {
		Href  string `json:"href"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(body, &links))
	require.Len(t, links, 1)
	assert.Equal(t, "gitlab.com", links[0].Label)

	status, body = do(t, app, fiber.MethodDelete, base+"/attributes/href", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, decodeView(t, body).HTML, "gitlab.com")
}

func TestGenerateSaveAndReopen(t *testing.T) {
	app := newTestApp(stubGenerator{out: "```html\n" + page + "\n```"})

	status, body := do(t, app, fiber.MethodPost, "/portfolios/generate", map[string]string{"resumeText": "Jane Doe, Go engineer"})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	v := decodeView(t, body)
	assert.NotContains(t, v.HTML, "```")

	status, body = do(t, app, fiber.MethodPost, "/sessions/"+v.SessionID+"/save", map[string]string{"userId": "u-1"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var saved struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.Equal(t, "Jane Doe", saved.Title)

	status, body = do(t, app, fiber.MethodGet, "/portfolios?userId=u-1", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	status, body = do(t, app, fiber.MethodGet, "/portfolios?userId=nobody", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	status, body = do(t, app, fiber.MethodPost, "/portfolios/"+saved.ID+"/open", nil)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	assert.Equal(t, saved.ID, decodeView(t, body).PortfolioID)

	status, _ = do(t, app, fiber.MethodPost, "/portfolios/00000000-0000-0000-0000-000000000001/open", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGenerateFailure(t *testing.T) {
	app := newTestApp(stubGenerator{err: errors.New("connection refused")})

	status, body := do(t, app, fiber.MethodPost, "/portfolios/generate", map[string]string{"resumeText": "Jane"})
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "Failed to generate portfolio.", errorOf(t, body))

	status, _ = do(t, app, fiber.MethodPost, "/portfolios/generate", map[string]string{"resumeText": ""})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRequestErrors(t *testing.T) {
	app := newTestApp(stubGenerator{})
	base := "/sessions/" + openSession(t, app).SessionID

	status, _ := do(t, app, fiber.MethodGet, "/sessions/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, fiber.MethodGet, "/sessions/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := do(t, app, fiber.MethodPost, base+"/select", map[string]interface{}{"path": []string{}})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid payload", errorOf(t, body))

	status, _ = do(t, app, fiber.MethodPost, base+"/select", map[string]interface{}{"path": []string{"body", "aside"}})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, fiber.MethodGet, "/portfolios", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, fiber.MethodDelete, base, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = do(t, app, fiber.MethodGet, base, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestExports(t *testing.T) {
	app := newTestApp(stubGenerator{})
	base := "/sessions/" + openSession(t, app).SessionID

	req := httptest.NewRequest(fiber.MethodGet, base+"/export.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	pdf, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.7", string(pdf))

	status, body := do(t, app, fiber.MethodGet, base+"/export.html", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "<title>Jane Doe</title>")

	status, minified := do(t, app, fiber.MethodGet, base+"/export.html?minify=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Less(t, len(minified), len(body))
}

func TestExtractResume(t *testing.T) {
	app := newTestApp(stubGenerator{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("Jane Doe\nGo engineer"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/resumes/extract", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var res extract.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Contains(t, res.Text, "Go engineer")
	assert.Equal(t, extract.KindText, res.Kind)

	status, _ := do(t, app, fiber.MethodPost, "/resumes/extract", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCatalogs(t *testing.T) {
	app := newTestApp(stubGenerator{})

	status, body := do(t, app, fiber.MethodGet, "/themes", nil)
	require.Equal(t, fiber.StatusOK, status)
	var themes []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &themes))
	assert.Len(t, themes, 10)

	status, body = do(t, app, fiber.MethodGet, "/templates", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "experience")
}
