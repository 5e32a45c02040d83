package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jsphweid/chartpak/config"
	"github.com/jsphweid/chartpak/model"
)

func do(t *testing.T, method string, path string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	NewRouter(config.Default()).ServeHTTP(w, req)
	return w.Result()
}

func TestHandlePack(t *testing.T) {
	resp := do(t, http.MethodPost, "/pack", strings.NewReader(testChart))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("application/octet-stream", resp.Header.Get("Content-Type"))
	assert.Equal(testChartBytes, respBody)
}

func TestHandlePackMalformed(t *testing.T) {
	resp := do(t, http.MethodPost, "/pack", strings.NewReader(`{"song": {"speed": 1}}`))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(respBody, &errResp))
	assert.Contains(errResp.Error, "song.bpm")
}

func TestHandleInspect(t *testing.T) {
	resp := do(t, http.MethodPost, "/inspect", bytes.NewReader(testChartBytes))
	respBody, _ := io.ReadAll(resp.Body)
	require.Equal(t, 200, resp.StatusCode)

	doc := gjson.ParseBytes(respBody)
	assert := assert.New(t)
	assert.Equal(int64(6), doc.Get("sectionTableLength").Int())
	assert.Equal(int64(0xFFFF), doc.Get("sections.0.end").Int())
	assert.False(doc.Get("sections.0.oppFocus").Bool())
	assert.Equal(int64(2), doc.Get("notes.#").Int())
	assert.Equal(int64(1), doc.Get("notes.0.lane").Int())
	assert.True(doc.Get("notes.1.hit").Bool())
}

func TestHandleInspectGarbage(t *testing.T) {
	resp := do(t, http.MethodPost, "/inspect", bytes.NewReader([]byte{1}))
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	resp := do(t, http.MethodGet, "/health", nil)
	respBody, _ := io.ReadAll(resp.Body)

	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok"}`, string(respBody))
}

func TestPackIsPostOnly(t *testing.T) {
	resp := do(t, http.MethodGet, "/pack", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCorsHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/pack", strings.NewReader(testChart))
	req.Header.Set("Origin", "http://editor.test")
	w := httptest.NewRecorder()
	NewRouter(config.Default()).ServeHTTP(w, req)

	assert.Equal(t, "*", w.Result().Header.Get("Access-Control-Allow-Origin"))
}
