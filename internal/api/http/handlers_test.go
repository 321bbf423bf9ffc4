package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/api/middleware"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/logging"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/pipeline"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func officeText(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../bdl/testdata/office.bdl")
	require.NoError(t, err)
	return string(data)
}

func newRouter(t *testing.T) (*gin.Engine, *monitoring.Metrics) {
	t.Helper()
	set, err := schema.LoadEmbedded()
	require.NoError(t, err)
	metrics := monitoring.NewMetrics()

	opts := pipeline.OptionsFrom(config.Default(), set)
	opts.Metrics = metrics
	p, err := pipeline.New(opts)
	require.NoError(t, err)

	h := NewHandlers(p, set, metrics, logging.Nop(), 1<<20, "test")
	return NewRouter(h, RouterConfig{CORS: middleware.DefaultCORSConfig()}), metrics
}

func do(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, sonic.ConfigStd.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestConvertRawBody(t *testing.T) {
	router, metrics := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert?name=office.inp&compact=true", strings.NewReader(officeText(t)))
	req.Header.Set("Content-Type", "text/plain")
	w := do(router, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.True(t, strings.HasPrefix(w.Header().Get(middleware.RunIDHeader), "run_"))
	assert.NotEqual(t, "0", w.Header().Get("X-Warnings"))
	assert.False(t, bytes.Contains(w.Body.Bytes(), []byte("\n  ")), "compact output")

	doc := decode(t, w)
	rmds := doc["ruleset_model_descriptions"].([]any)
	require.Len(t, rmds, 1)
	rmd := rmds[0].(map[string]any)
	assert.Equal(t, "office.inp", rmd["id"])
	assert.Equal(t, "PROPOSED", rmd["type"])

	assert.Equal(t, int64(1), metrics.Snapshot().ModelsConverted)
}

func TestConvertMultipart(t *testing.T) {
	router, _ := newRouter(t)
	text := officeText(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, part := range []struct{ field, file, body string }{
		{"proposed", "proposed.inp", text},
		{"baseline_0", "baseline.inp", text},
		{"outputs", "outputs.json", fmt.Sprintf(`{"outputs":[{"code":%d,"name":"Boiler 1","value":188203.578125}]}`, simoutput.BoilerDesignCapacity)},
	} {
		fw, err := mw.CreateFormFile(part.field, part.file)
		require.NoError(t, err)
		_, err = fw.Write([]byte(part.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := do(router, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rmds := decode(t, w)["ruleset_model_descriptions"].([]any)
	require.Len(t, rmds, 2)
	assert.Equal(t, "BASELINE_0", rmds[0].(map[string]any)["type"])
	assert.Equal(t, "PROPOSED", rmds[1].(map[string]any)["type"])
}

func TestConvertFailures(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown model type", "/api/v1/convert?type=sideways", "DOE-2.3\n", http.StatusUnprocessableEntity},
		{"empty body", "/api/v1/convert", "", http.StatusUnprocessableEntity},
		{"binary body", "/api/v1/convert", "\x00\x01\x02\x03PK\x03\x04", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, false, decode(t, w)["success"])
		})
	}
}

func TestInspect(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, httptest.NewRequest(http.MethodPost, "/api/v1/inspect", strings.NewReader(officeText(t))))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "DOE-2.3-50h", body["version"])
	assert.Equal(t, 2.0, body["counts"].(map[string]any)["BOILER"])
	assert.Len(t, body["fingerprint"], 64)

	w = do(router, httptest.NewRequest(http.MethodPost, "/api/v1/inspect", strings.NewReader("  \n")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnumerations(t *testing.T) {
	router, _ := newRouter(t)

	t.Run("schema", func(t *testing.T) {
		w := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/enumerations/DayOfWeekOptions", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["members"], 7)
	})

	t.Run("bdl tokens", func(t *testing.T) {
		w := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/enumerations/LIBRARY-COMMANDS?source=bdl", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"CURVE-FIT", "MATERIAL", "GLASS-TYPE"}, decode(t, w)["members"])
	})

	t.Run("unknown", func(t *testing.T) {
		w := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/enumerations/Nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("names", func(t *testing.T) {
		w := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/enumerations", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode(t, w)["names"], "RulesetModelOptions")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newRouter(t)
	do(router, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := do(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rpdgen_http_requests_total{method="GET",path="/health",status="200"} 1`)
}
