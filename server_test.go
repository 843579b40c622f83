package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"rejiscan/pkg/ocr"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

type stubEngine struct {
	text string
	err  error
}

func (s stubEngine) Recognize(_ context.Context, _ []byte, _ ocr.Config) (string, error) {
	return s.text, s.err
}

func performRequest(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T, engine ocr.Engine) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var err error
	scanLog, err = NewFileScanLog(filepath.Join(t.TempDir(), "ocr.log"))
	if err != nil {
		t.Fatalf("scan log: %v", err)
	}
	pipeline = ocr.NewPipeline(engine, ocr.NewVocabulary(), scanLog)
	db = nil
	r := gin.New()
	setupRoutes(r)
	return r
}

func multipartImage(t *testing.T, field, name string) (*bytes.Buffer, string) {
	t.Helper()
	img := imaging.New(400, 600, color.NRGBA{255, 255, 255, 255})
	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, _ := mw.CreateFormFile(field, name)
	_, _ = w.Write(png.Bytes())
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestServer(t, stubEngine{text: "x"})
	resp := performRequest(r, http.MethodGet, "/", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("health failed status=%d", resp.Code)
	}
}

func TestScanEndpoint(t *testing.T) {
	raw := "パン ¥120\n軽 ¥9\n合計 ¥120"
	r := setupTestServer(t, stubEngine{text: raw})
	body, ct := multipartImage(t, "file", "receipt.png")
	resp := performRequest(r, http.MethodPost, "/scan", body, ct)
	if resp.Code != http.StatusOK {
		t.Fatalf("scan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var out struct {
		Success   bool       `json:"success"`
		Items     []ocr.Item `json:"items"`
		Total     *int       `json:"total"`
		Formatted string     `json:"formatted"`
		RawText   string     `json:"raw_text"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success")
	}
	if len(out.Items) != 1 || out.Items[0].Name != "パン" || out.Items[0].Price != 120 {
		t.Fatalf("unexpected items %+v", out.Items)
	}
	if out.Total == nil || *out.Total != 120 {
		t.Fatalf("unexpected total %v", out.Total)
	}
	if out.RawText != raw {
		t.Fatalf("raw text must be passed through for diagnostics")
	}
}

func TestScanEndpointMissingFile(t *testing.T) {
	r := setupTestServer(t, stubEngine{text: "x"})
	resp := performRequest(r, http.MethodPost, "/scan", nil, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestScanEndpointInvalidImage(t *testing.T) {
	r := setupTestServer(t, stubEngine{text: "x"})
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, _ := mw.CreateFormFile("file", "junk.bin")
	_, _ = w.Write([]byte("definitely not an image"))
	_ = mw.Close()
	resp := performRequest(r, http.MethodPost, "/scan", buf, mw.FormDataContentType())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("invalid image must be rejected before OCR, got %d", resp.Code)
	}
}

func TestScanEndpointEngineDown(t *testing.T) {
	r := setupTestServer(t, stubEngine{err: ocr.ErrNoText})
	body, ct := multipartImage(t, "file", "receipt.png")
	resp := performRequest(r, http.MethodPost, "/scan", body, ct)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d body=%s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), `"success":true`) {
		t.Fatalf("failure must not report success")
	}
}

func TestScansRequirePersistence(t *testing.T) {
	r := setupTestServer(t, stubEngine{text: "x"})
	if resp := performRequest(r, http.MethodGet, "/scans", nil, ""); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without DB got %d", resp.Code)
	}
}

func TestScanLogEndpoints(t *testing.T) {
	r := setupTestServer(t, stubEngine{text: "パン ¥120"})
	body, ct := multipartImage(t, "file", "receipt.png")
	if resp := performRequest(r, http.MethodPost, "/scan", body, ct); resp.Code != http.StatusOK {
		t.Fatalf("scan failed status=%d", resp.Code)
	}
	resp := performRequest(r, http.MethodGet, "/logs/ocr", nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "receipt.png") {
		t.Fatalf("scan log must contain the processed file, body=%q", resp.Body.String())
	}
	if resp := performRequest(r, http.MethodDelete, "/logs/ocr", nil, ""); resp.Code != http.StatusOK {
		t.Fatalf("clear failed status=%d", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/logs/ocr", nil, "")
	if strings.Contains(resp.Body.String(), "receipt.png") {
		t.Fatalf("log must be cleared, body=%q", resp.Body.String())
	}
}
