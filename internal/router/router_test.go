package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"printshop-backend/internal/auth"
	"printshop-backend/internal/database/databasetest"
	"printshop-backend/internal/handlers"
	"printshop-backend/internal/models"
	"printshop-backend/internal/router"
	"printshop-backend/internal/services"
	"printshop-backend/internal/storage"
)

type testServer struct {
	engine    *gin.Engine
	uploadDir string
}

func newTestServer(t *testing.T, maxFileBytes int64) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := databasetest.NewStore(t)
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	files, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	authority := auth.NewAuthority(
		auth.StaticCredentials{Username: "admin", Password: "s3cret"},
		store,
		[]byte("test-secret"),
	)

	engine := router.SetupRouter(router.Deps{
		Orders:    services.NewOrderService(store, files, nil),
		Authority: authority,
		Limits:    handlers.UploadLimits{MaxFileBytes: maxFileBytes, MaxFiles: 5},
		DistDir:   t.TempDir(),
	})
	return testServer{engine: engine, uploadDir: uploadDir}
}

func (s testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body, session string) *http.Request {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("sessionid", session)
	}
	return req
}

type part struct {
	name    string
	content string
	mime    string
	field   string
}

func orderRequest(t *testing.T, orderData string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if orderData != "" {
		require.NoError(t, mw.WriteField("orderData", orderData))
	}
	for _, f := range files {
		field := f.field
		if field == "" {
			field = "files"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.mime)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(w, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/orders", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func login(t *testing.T, s testServer) string {
	t.Helper()
	w := s.do(t, jsonRequest("POST", "/api/admin/login", `{"username":"admin","password":"s3cret"}`, ""))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func submit(t *testing.T, s testServer, files ...part) string {
	t.Helper()
	w := s.do(t, orderRequest(t, `{"customerName":"Ada","phoneNumber":"555","copies":"2","totalCost":9.5}`, files...))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.OrderID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 1<<20)

	w := s.do(t, httptest.NewRequest("GET", "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, 1<<20)

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, jsonRequest("POST", "/api/admin/login", `{"username":"admin","password":"nope"}`, ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("empty password", func(t *testing.T) {
		w := s.do(t, jsonRequest("POST", "/api/admin/login", `{"username":"admin","password":""}`, ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, jsonRequest("POST", "/api/admin/login", `{}`, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("verify", func(t *testing.T) {
		token := login(t, s)

		w := s.do(t, jsonRequest("POST", "/api/admin/verify", `{"sessionId":"`+token+`"}`, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"valid":true}`, w.Body.String())

		w = s.do(t, jsonRequest("POST", "/api/admin/verify", `{"sessionId":"bogus"}`, ""))
		assert.JSONEq(t, `{"valid":false}`, w.Body.String())

		w = s.do(t, jsonRequest("POST", "/api/admin/verify", `not json`, ""))
		assert.JSONEq(t, `{"valid":false}`, w.Body.String())
	})
}

func TestSubmitAndRead(t *testing.T) {
	s := newTestServer(t, 1<<20)

	orderID := submit(t, s,
		part{name: "flyer.txt", content: "front and back", mime: "text/plain"},
		part{name: "poster.txt", content: "big", mime: "text/plain"},
	)
	assert.Regexp(t, `^ORD-\d+$`, orderID)

	// Public lookup.
	w := s.do(t, httptest.NewRequest("GET", "/api/orders/"+orderID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "Ada", order.CustomerName)
	assert.Equal(t, 2, order.Copies)
	assert.Equal(t, 9.5, order.TotalCost)
	assert.Equal(t, "pending", order.Status)
	require.Len(t, order.Files, 2)

	w = s.do(t, httptest.NewRequest("GET", "/api/orders/ORD-0", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Listing needs a session.
	w = s.do(t, httptest.NewRequest("GET", "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, s)
	w = s.do(t, jsonRequest("GET", "/api/orders", "", token))
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Files, 2)

	// Download by storage name.
	var flyer models.OrderFile
	for _, f := range order.Files {
		if f.OriginalName == "flyer.txt" {
			flyer = f
		}
	}
	require.NotEmpty(t, flyer.FileName)

	w = s.do(t, httptest.NewRequest("GET", "/api/files/"+flyer.FileName, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "front and back", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "flyer.txt")
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))

	w = s.do(t, httptest.NewRequest("GET", "/api/files/nope.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, httptest.NewRequest("GET", "/api/files/..secret", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmit_BracketFieldName(t *testing.T) {
	s := newTestServer(t, 1<<20)

	orderID := submit(t, s,
		part{name: "a.txt", content: "one", mime: "text/plain", field: "files[]"},
		part{name: "b.txt", content: "two", mime: "text/plain", field: "files[]"},
	)

	w := s.do(t, httptest.NewRequest("GET", "/api/orders/"+orderID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.Len(t, order.Files, 2)

	names := map[string]bool{}
	for _, f := range order.Files {
		names[f.OriginalName] = true
	}
	assert.Equal(t, map[string]bool{"a.txt": true, "b.txt": true}, names)
}

func TestSubmitValidation(t *testing.T) {
	s := newTestServer(t, 16)

	t.Run("missing orderData", func(t *testing.T) {
		w := s.do(t, orderRequest(t, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed orderData", func(t *testing.T) {
		w := s.do(t, orderRequest(t, "{not json"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		w := s.do(t, jsonRequest("POST", "/api/orders", `{"customerName":"x"}`, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("file over limit", func(t *testing.T) {
		w := s.do(t, orderRequest(t, `{"customerName":"x"}`,
			part{name: "big.txt", content: strings.Repeat("x", 17), mime: "text/plain"}))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

		entries, err := os.ReadDir(s.uploadDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestUpdateStatus(t *testing.T) {
	s := newTestServer(t, 1<<20)
	orderID := submit(t, s)

	w := s.do(t, jsonRequest("PUT", "/api/orders/"+orderID+"/status", `{"status":"completed"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, s)

	w = s.do(t, jsonRequest("PUT", "/api/orders/ORD-0/status", `{"status":"completed"}`, token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, jsonRequest("PUT", "/api/orders/"+orderID+"/status", `{}`, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for i := 0; i < 2; i++ {
		w = s.do(t, jsonRequest("PUT", "/api/orders/"+orderID+"/status", `{"status":"completed"}`, token))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
	}

	w = s.do(t, httptest.NewRequest("GET", "/api/orders/"+orderID, nil))
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
}

func TestClearOrders(t *testing.T) {
	s := newTestServer(t, 1<<20)
	submit(t, s, part{name: "a.txt", content: "a", mime: "text/plain"})
	submit(t, s, part{name: "b.txt", content: "b", mime: "text/plain"})

	w := s.do(t, jsonRequest("DELETE", "/api/orders", "", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, s)
	w = s.do(t, jsonRequest("DELETE", "/api/orders", "", token))
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, jsonRequest("GET", "/api/orders", "", token))
	assert.JSONEq(t, `[]`, w.Body.String())

	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing again is fine.
	w = s.do(t, jsonRequest("DELETE", "/api/orders", "", token))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t, 1<<20)
	submit(t, s)

	w := s.do(t, httptest.NewRequest("GET", "/api/export/orders.csv", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, s)

	w = s.do(t, jsonRequest("GET", "/api/export/orders.csv", "", token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Ada")

	w = s.do(t, jsonRequest("GET", "/api/export/orders.xlsx", "", token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestUnknownAPIRoute(t *testing.T) {
	s := newTestServer(t, 1<<20)

	w := s.do(t, httptest.NewRequest("GET", "/api/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
