package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/404Health/universal-dataCleaner/internal/config"
	"github.com/404Health/universal-dataCleaner/internal/services"
)

func newTestHandler(t *testing.T) *CleanHandler {
	t.Helper()
	svc := services.NewCleanService(config.CleaningConfig{
		FillStrategy:       "delete",
		ApplyOutliers:      true,
		OutlierMethod:      "zscore",
		OutlierThreshold:   3.0,
		OutlierReplacement: "median",
		MaxCachedRuns:      8,
	}, slog.Default())
	return NewCleanHandler(svc, slog.Default())
}

// multipartRequest builds a multipart clean request with the given file
// and form fields.
func multipartRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/clean", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCleanHandler_Clean(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	req := multipartRequest(t, "people.csv", []byte("Name ,Score?\nAlice,10\nAlice,10\nBob,\n"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 3, resp.RowsBefore)
	assert.Equal(t, 1, resp.RowsAfter)
	assert.Equal(t, []string{"name", "score"}, resp.Preview.Columns)
	assert.Contains(t, resp.Steps, "Removed 1 duplicate rows")
	require.Len(t, resp.Missing, 1)
	assert.Equal(t, "score", resp.Missing[0].Column)
}

func TestCleanHandler_CleanWithOptions(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	req := multipartRequest(t, "labels.csv", []byte("Label\na\nb\n\n"), map[string]string{
		"fill_strategy":       "forward_fill",
		"apply_outliers":      "false",
		"categorical_columns": "Label",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.RowsAfter)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"b"}}, resp.Preview.Rows)
}

func TestCleanHandler_MissingFile(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fill_strategy", "delete"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/clean", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleanHandler_UnsupportedExtension(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	req := multipartRequest(t, "data.json", []byte("{}"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleanHandler_InvalidStrategy(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	req := multipartRequest(t, "a.csv", []byte("v\n1\n"), map[string]string{
		"fill_strategy": "bogus",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestCleanHandler_GetRunAndDownload(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	req := multipartRequest(t, "a.csv", []byte("v\n1\n2\n"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+resp.RunID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+resp.RunID+"/download/csv", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cleaned_a.csv")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+resp.RunID+"/download/pdf", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleanHandler_RunNotFound(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCleanHandler_EmptyFile(t *testing.T) {
	handler := newTestHandler(t)
	router := handler.Routes()

	req := multipartRequest(t, "empty.csv", []byte("a,b\n"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Interface compliance check for the real service.
var _ CleanServiceInterface = (*services.CleanService)(nil)
