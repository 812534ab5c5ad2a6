package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func setupKeyRouter(apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(APIKeyAuth(apiKey))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object in response")
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		requestKey    string
		wantStatus    int
		wantErrorCode string
	}{
		{
			name:          "valid_api_key",
			configuredKey: "secret-ledger-key",
			requestKey:    "secret-ledger-key",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "invalid_api_key",
			configuredKey: "secret-ledger-key",
			requestKey:    "wrong-key",
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: "UNAUTHORIZED",
		},
		{
			name:          "missing_api_key",
			configuredKey: "secret-ledger-key",
			requestKey:    "",
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: "UNAUTHORIZED",
		},
		{
			name:          "gate_disabled",
			configuredKey: "",
			requestKey:    "",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "partial_match_rejected",
			configuredKey: "secret-ledger-key",
			requestKey:    "secret-ledger",
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: "UNAUTHORIZED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(setupKeyRouter(tt.configuredKey), http.MethodGet, "/test", tt.requestKey)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantErrorCode != "" {
				if code := errorCode(t, rec); code != tt.wantErrorCode {
					t.Errorf("error code = %q, want %q", code, tt.wantErrorCode)
				}
			}
			if tt.wantStatus == http.StatusOK {
				body := parseBody(t, rec)
				if status, _ := body["status"].(string); status != "ok" {
					t.Errorf("expected handler to be reached, got status = %q", status)
				}
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.Wrap(apperrors.ErrTransactionNotFound, stderrors.New("lookup failed")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(stderrors.New("database exploded"))
	})
	r.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("app_error", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/app", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if code := errorCode(t, rec); code != "TRANSACTION_NOT_FOUND" {
			t.Errorf("error code = %q", code)
		}
	})

	t.Run("unexpected_error_is_hidden", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/plain", "")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
		body := parseBody(t, rec)
		msg := body["error"].(map[string]interface{})["message"]
		if msg != apperrors.ErrInternalServer.Message {
			t.Errorf("internal details leaked: %v", msg)
		}
	})

	t.Run("answered_request_is_left_alone", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/answered", func(c *gin.Context) {
			_ = c.Error(stderrors.New("logged only"))
			c.JSON(http.StatusConflict, gin.H{"status": "handled"})
		})
		rec := doRequest(r, http.MethodGet, "/answered", "")
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
		if body := parseBody(t, rec); body["status"] != "handled" {
			t.Errorf("response was overwritten: %v", body)
		}
	})

	t.Run("no_error", func(t *testing.T) {
		if rec := doRequest(r, http.MethodGet, "/ok", ""); rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generates_id", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/id", "")
		id := rec.Header().Get("X-Request-ID")
		if id == "" || rec.Body.String() != id {
			t.Errorf("expected matching request id, header %q body %q", id, rec.Body.String())
		}
	})

	t.Run("reuses_incoming_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", http.NoBody)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Header().Get("X-Request-ID") != "abc-123" {
			t.Errorf("expected incoming id to be kept, got %q", rec.Header().Get("X-Request-ID"))
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := doRequest(r, http.MethodOptions, "/x", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing allow-origin header")
	}
}
