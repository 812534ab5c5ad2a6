package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gelirgider/internal/logger"
	"gelirgider/internal/models"
	"gelirgider/internal/services"
	"gelirgider/internal/store"
	"gelirgider/internal/testutil"
	"gelirgider/internal/validator"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	Store    *store.Store
	Services Services
	Router   *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an in-memory persister.
func setupApp(t *testing.T, apiKey string, source services.RateSource) *testApp {
	t.Helper()

	ledger, err := store.Open(context.Background(), store.NewMemoryPersister(),
		store.WithClock(testutil.FixedClock),
		store.WithLogger(zap.NewNop().Sugar()),
	)
	testutil.AssertNoError(t, err)

	svc := NewServices(ledger, source)
	return &testApp{Store: ledger, Services: svc, Router: NewRouter(svc, apiKey)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestHealth(t *testing.T) {
	app := setupApp(t, "secret", nil)

	rec := app.request("GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIKeyGate(t *testing.T) {
	app := setupApp(t, "secret", nil)

	rec := app.request("GET", "/api/v1/rates", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	req := httptest.NewRequest("GET", "/api/v1/rates", http.NoBody)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}
}

func TestLedgerFlow_RateCascade(t *testing.T) {
	app := setupApp(t, "", nil)

	// Step 1: record a USD income and a GBP expense
	rec := app.request("POST", "/api/v1/transactions",
		`{"type":"income","company_name":"Istanbul Care","amount":100,"currency":"USD","category_id":"medical","transaction_date":"2026-01-15","status":"received"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	usd := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if usd["amount_try"].(float64) != 4305 {
		t.Errorf("expected amount_try 4305, got %v", usd["amount_try"])
	}

	rec = app.request("POST", "/api/v1/transactions",
		`{"type":"expense","company_name":"Lisans","amount":"10","currency":"GBP","category_id":"software","transaction_date":"2026-01-20"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	gbp := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if gbp["status"] != string(models.StatusPending) {
		t.Errorf("expected default status pending, got %v", gbp["status"])
	}

	// Step 2: change the GBP rate
	rec = app.request("PUT", "/api/v1/rates/GBP", `{"rate":50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 3: only the GBP transaction is recomputed
	rec = app.request("GET", fmt.Sprintf("/api/v1/transactions/%s", gbp["id"]), "")
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["amount_try"].(float64) != 500 || updated["exchange_rate"].(float64) != 50 {
		t.Errorf("expected 10 GBP at 50 = 500, got %v at %v", updated["amount_try"], updated["exchange_rate"])
	}
	rec = app.request("GET", fmt.Sprintf("/api/v1/transactions/%s", usd["id"]), "")
	untouched := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if untouched["amount_try"].(float64) != 4305 {
		t.Errorf("USD transaction changed: %v", untouched["amount_try"])
	}

	// Step 4: the TRY rate is fixed
	rec = app.request("PUT", "/api/v1/rates/TRY", `{"rate":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	// Step 5: monthly report reflects both
	rec = app.request("GET", "/api/v1/reports/monthly?year=2026&month=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["income"].(float64) != 4305 || summary["expense"].(float64) != 500 || summary["net"].(float64) != 3805 {
		t.Errorf("unexpected summary %v", summary)
	}
	if summary["pending_amount"].(float64) != 500 {
		t.Errorf("expected pending 500, got %v", summary["pending_amount"])
	}
}

func TestLedgerFlow_RecurringGeneration(t *testing.T) {
	app := setupApp(t, "", nil)

	// Step 1: create a monthly template on day 31
	rec := app.request("POST", "/api/v1/recurring",
		`{"type":"expense","company_name":"Kira","amount":10,"currency":"GBP","category_id":"housing","frequency":"monthly","day_of_month":31,"start_date":"2026-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	item := parseJSON(t, rec)["recurring_item"].(map[string]interface{})

	_ = app.request("PUT", "/api/v1/rates/GBP", `{"rate":50}`)

	// Step 2: generate February twice
	for i, want := range []float64{1, 0} {
		rec = app.request("POST", "/api/v1/recurring/generate", `{"year":2026,"month":2}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("run %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
		if got := parseJSON(t, rec)["count"].(float64); got != want {
			t.Fatalf("run %d: expected %v generated, got %v", i, want, got)
		}
	}

	// Step 3: the clamped occurrence is listed
	rec = app.request("GET", "/api/v1/transactions?year=2026&month=2", "")
	page := parseJSON(t, rec)
	if page["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 transaction, got %v", page["total_items"])
	}
	tx := page["data"].([]interface{})[0].(map[string]interface{})
	if tx["transaction_date"] != "2026-02-28" || tx["amount_try"].(float64) != 500 {
		t.Errorf("unexpected generated transaction %v", tx)
	}
	if tx["recurring_id"] != item["id"] || tx["is_recurring"] != true {
		t.Errorf("expected link to template %v, got %v", item["id"], tx["recurring_id"])
	}

	// Step 4: pausing stops generation
	rec = app.request("POST", fmt.Sprintf("/api/v1/recurring/%s/toggle", item["id"]), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/v1/transactions?year=2026&month=3&generate=true", "")
	if parseJSON(t, rec)["total_items"].(float64) != 0 {
		t.Error("paused template should not generate")
	}

	// Step 5: deleting the template keeps its transactions
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/recurring/%s", item["id"]), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/v1/transactions?year=2026&month=2", "")
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("generated transaction should survive template deletion")
	}
}

func TestLedgerFlow_FiltersAndYearly(t *testing.T) {
	app := setupApp(t, "", nil)

	bodies := []string{
		`{"type":"income","company_name":"Alpha","amount":1000,"currency":"TRY","transaction_date":"2026-01-05","status":"received"}`,
		`{"type":"expense","company_name":"Beta","amount":400,"currency":"TRY","transaction_date":"2026-01-06","notes":"ofis kirası"}`,
		`{"type":"expense","company_name":"Gamma","amount":900,"currency":"TRY","transaction_date":"2026-01-07","status":"cancelled"}`,
		`{"type":"income","company_name":"Delta","amount":200,"currency":"TRY","transaction_date":"2026-04-01"}`,
	}
	for _, body := range bodies {
		if rec := app.request("POST", "/api/v1/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	t.Run("cancelled excluded from totals", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/reports/monthly?year=2026&month=1", "")
		summary := parseJSON(t, rec)["summary"].(map[string]interface{})
		if summary["income"].(float64) != 1000 || summary["expense"].(float64) != 400 || summary["net"].(float64) != 600 {
			t.Errorf("expected {1000, 400, 600}, got %v", summary)
		}
	})

	t.Run("search matches company name only", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?year=2026&month=1&search=BET", "")
		if parseJSON(t, rec)["total_items"].(float64) != 1 {
			t.Errorf("expected 1 match, got %s", rec.Body.String())
		}
		rec = app.request("GET", "/api/v1/transactions?year=2026&month=1&search=kira", "")
		if parseJSON(t, rec)["total_items"].(float64) != 0 {
			t.Errorf("notes should not be searched, got %s", rec.Body.String())
		}
	})

	t.Run("type filter", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?year=2026&month=1&type=expense", "")
		if parseJSON(t, rec)["total_items"].(float64) != 2 {
			t.Errorf("expected 2 expenses, got %s", rec.Body.String())
		}
	})

	t.Run("yearly ignores the month filter", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/reports/yearly?year=2026", "")
		result := parseJSON(t, rec)
		months := result["months"].([]interface{})
		if len(months) != 12 {
			t.Fatalf("expected 12 months, got %d", len(months))
		}
		april := months[3].(map[string]interface{})
		if april["income"].(float64) != 200 || april["label"] != "Nisan" {
			t.Errorf("unexpected april %v", april)
		}
		totals := result["totals"].(map[string]interface{})
		if totals["net"].(float64) != 800 {
			t.Errorf("expected net 800, got %v", totals["net"])
		}
	})
}

func TestLedgerFlow_RefreshRates(t *testing.T) {
	source := services.NewStaticRateSource(models.ExchangeRates{
		models.CurrencyUSD: decimal.RequireFromString("44"),
	})
	app := setupApp(t, "", source)

	_ = app.request("POST", "/api/v1/transactions",
		`{"type":"income","amount":10,"currency":"USD","transaction_date":"2026-01-15"}`)

	rec := app.request("POST", "/api/v1/rates/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rates := parseJSON(t, rec)["exchange_rates"].(map[string]interface{})
	if rates["USD"].(float64) != 44 {
		t.Errorf("expected USD 44, got %v", rates["USD"])
	}

	snap := app.Store.Snapshot()
	testutil.AssertDecimal(t, snap.Transactions[0].AmountTRY, "440", "amount_try")

	rec = app.request("POST", "/api/v1/rates/reset", "")
	rates = parseJSON(t, rec)["exchange_rates"].(map[string]interface{})
	if rates["USD"].(float64) != 43.05 {
		t.Errorf("expected default USD rate, got %v", rates["USD"])
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	app := setupApp(t, "", nil)
	app.Store.AddRecurringItem(context.Background(),
		testutil.MonthlyItem(models.TransactionTypeIncome, "100", models.CurrencyTRY, 15, "2026-01-01"))

	s := NewScheduler(app.Services.Recurring, time.Hour)
	s.now = func() time.Time { return time.Date(2026, time.May, 2, 8, 0, 0, 0, time.UTC) }
	s.log = zap.NewNop().Sugar()

	if got := s.RunOnce(context.Background()); got != 1 {
		t.Fatalf("expected 1 generated, got %d", got)
	}
	if got := s.RunOnce(context.Background()); got != 0 {
		t.Fatalf("expected rerun to generate nothing, got %d", got)
	}
	tx := app.Store.Snapshot().Transactions[0]
	if tx.TransactionDate != "2026-05-15" {
		t.Errorf("expected 2026-05-15, got %s", tx.TransactionDate)
	}
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	app := setupApp(t, "", nil)
	s := NewScheduler(app.Services.Recurring, time.Millisecond)
	s.log = zap.NewNop().Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
