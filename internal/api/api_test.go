package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batchboard/b/internal/backup"
	"batchboard/b/internal/database"
	"batchboard/b/internal/migrations"
)

const testAdminPassword = "admin123"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Apply(db, testAdminPassword))

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(db, "test-secret", nil, discard)

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func loginAs(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()

	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func adminToken(t *testing.T, srv *httptest.Server) string {
	return loginAs(t, srv, "admin", testAdminPassword)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/login", "", `{"username":"admin","password":"wrong"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/login", "",
		fmt.Sprintf(`{"username":"admin","password":%q}`, testAdminPassword))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
			Password string `json:"password"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "admin", body.User.Username)
	assert.Equal(t, "admin", body.User.Role)
	assert.Empty(t, body.User.Password, "password hash must not leak")
}

func TestAuthGate(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/customers", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/customers", "not-a-token", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomerCRUD(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/customers", token,
		`{"name":"Medix GmbH","country":"Germany","contact_person":"A. Weber","email":"a@medix.example","phone":"+49 30 1234","notes":""}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = doRequest(t, http.MethodPost, srv.URL+"/customers", token, `{"name":"  "}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodPut, fmt.Sprintf("%s/customers/%d", srv.URL, created.ID), token,
		`{"name":"Medix GmbH","country":"Austria","contact_person":"","email":"","phone":"","notes":"moved"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/customers", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var customers []map[string]any
	decodeBody(t, resp, &customers)
	require.Len(t, customers, 1)
	assert.Equal(t, "Austria", customers[0]["country"])

	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/customers/%d", srv.URL, created.ID), token, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/customers", token, "")
	decodeBody(t, resp, &customers)
	assert.Empty(t, customers)
}

func TestStockMetricsFlow(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	post := func(path, body string) {
		t.Helper()
		resp := doRequest(t, http.MethodPost, srv.URL+path, token, body)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	post("/purchases", `{"supplier":"Alkem Labs","size":"5ml","batch_number":"B-1","expiry_date":"2027-06-30","units":100,"cost":50}`)
	post("/purchases", `{"supplier":"Alkem Labs","size":"5ml","batch_number":"B-2","expiry_date":"2027-09-30","units":100,"cost":70}`)
	post("/sales", `{"customer":"Medix GmbH","country":"Germany","size":"5ml","batch_number":"B-1","units":40,"price":90}`)
	post("/adjustments", `{"batch_number":"B-1","size":"5ml","units":10,"cost":0,"reason":"samples","recipient":"trade fair"}`)
	post("/holds", `{"customer":"Pharma Plus","country":"UAE","size":"5ml","batch_number":"B-2","units":25}`)

	resp := doRequest(t, http.MethodGet, srv.URL+"/reports/stock", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock []struct {
		Size      string `json:"size"`
		Packs     int64  `json:"packs"`
		Vials     int64  `json:"vials"`
		HeldPacks int64  `json:"held_packs"`
		FreePacks int64  `json:"free_packs"`
		AvgCost   string `json:"avg_cost"`
	}
	decodeBody(t, resp, &stock)
	require.NotEmpty(t, stock)

	row := stock[0]
	assert.Equal(t, "5ml", row.Size)
	assert.Equal(t, int64(150), row.Packs) // 200 - 40 - 10
	assert.Equal(t, int64(750), row.Vials)
	assert.Equal(t, int64(25), row.HeldPacks)
	assert.Equal(t, int64(125), row.FreePacks)
	assert.Equal(t, "60", row.AvgCost) // (100*50 + 100*70) / 200

	resp = doRequest(t, http.MethodGet, srv.URL+"/reports/dashboard", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		TotalRevenue  string         `json:"total_revenue"`
		TotalMargin   string         `json:"total_margin"`
		TotalWriteOff string         `json:"total_write_off"`
		Counts        map[string]int `json:"counts"`
	}
	decodeBody(t, resp, &summary)
	assert.Equal(t, "3600", summary.TotalRevenue) // 40 * 90
	assert.Equal(t, "1200", summary.TotalMargin)  // 40 * (90 - 60)
	assert.Equal(t, "600", summary.TotalWriteOff) // 10 packs at snapshotted avg cost 60
	assert.Equal(t, 2, summary.Counts["purchases"])
	assert.Equal(t, 1, summary.Counts["holds"])

	resp = doRequest(t, http.MethodGet, srv.URL+"/reports/sales", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sales []struct {
		Revenue       string `json:"revenue"`
		Margin        string `json:"margin"`
		MarginPercent string `json:"margin_percent"`
	}
	decodeBody(t, resp, &sales)
	require.Len(t, sales, 1)
	assert.Equal(t, "3600", sales[0].Revenue)
	assert.Equal(t, "1200", sales[0].Margin)
	assert.Equal(t, "33.33", sales[0].MarginPercent)

	resp = doRequest(t, http.MethodGet, srv.URL+"/reports/monthly", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var monthly []struct {
		Month string `json:"month"`
		Units int64  `json:"units"`
	}
	decodeBody(t, resp, &monthly)
	require.Len(t, monthly, 1)
	assert.Equal(t, int64(40), monthly[0].Units)
}

func TestAdjustmentCostSnapshot(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/purchases", token,
		`{"supplier":"Alkem Labs","size":"10ml","batch_number":"B-9","expiry_date":"","units":10,"cost":80}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/adjustments", token,
		`{"batch_number":"B-9","size":"10ml","units":2,"cost":0,"reason":"damage","recipient":""}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Cost string `json:"cost"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "80", created.Cost, "zero cost snapshots the current average")
}

func TestHoldConvertAndRevert(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/holds", token,
		`{"customer":"Pharma Plus","country":"UAE","size":"5ml","batch_number":"B-7","units":12}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var hold struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &hold)

	// Convert the hold into a sale.
	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/holds/%d/convert", srv.URL, hold.ID), token, `{"price":95.50}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var converted struct {
		SaleID         int64  `json:"sale_id"`
		OriginalHoldID int64  `json:"original_hold_id"`
		ConvertedFrom  string `json:"converted_from"`
	}
	decodeBody(t, resp, &converted)
	assert.Equal(t, hold.ID, converted.OriginalHoldID)
	assert.NotEmpty(t, converted.ConvertedFrom)

	resp = doRequest(t, http.MethodGet, srv.URL+"/holds", token, "")
	var holds []map[string]any
	decodeBody(t, resp, &holds)
	assert.Empty(t, holds, "converted hold must be removed")

	resp = doRequest(t, http.MethodGet, srv.URL+"/sales", token, "")
	var sales []struct {
		ID             int64  `json:"id"`
		Customer       string `json:"customer"`
		Units          int64  `json:"units"`
		Price          string `json:"price"`
		ConvertedFrom  string `json:"converted_from"`
		OriginalHoldID int64  `json:"original_hold_id"`
	}
	decodeBody(t, resp, &sales)
	require.Len(t, sales, 1)
	assert.Equal(t, "Pharma Plus", sales[0].Customer)
	assert.Equal(t, int64(12), sales[0].Units)
	assert.Equal(t, "95.5", sales[0].Price)
	assert.Equal(t, hold.ID, sales[0].OriginalHoldID)
	assert.NotEmpty(t, sales[0].ConvertedFrom)

	// Revert the sale back into a hold.
	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/sales/%d/revert", srv.URL, sales[0].ID), token, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reverted struct {
		HoldID         int64 `json:"hold_id"`
		OriginalSaleID int64 `json:"original_sale_id"`
	}
	decodeBody(t, resp, &reverted)
	assert.Equal(t, sales[0].ID, reverted.OriginalSaleID)

	resp = doRequest(t, http.MethodGet, srv.URL+"/sales", token, "")
	decodeBody(t, resp, &sales)
	assert.Empty(t, sales, "reverted sale must be removed")

	resp = doRequest(t, http.MethodGet, srv.URL+"/holds", token, "")
	var newHolds []struct {
		Units          int64  `json:"units"`
		RevertedFrom   string `json:"reverted_from"`
		OriginalSaleID int64  `json:"original_sale_id"`
	}
	decodeBody(t, resp, &newHolds)
	require.Len(t, newHolds, 1)
	assert.Equal(t, int64(12), newHolds[0].Units)
	assert.NotZero(t, newHolds[0].OriginalSaleID)
	assert.NotEmpty(t, newHolds[0].RevertedFrom)
}

func TestConvertMissingHold(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/holds/999/convert", token, `{"price":10}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPipelineLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/pipeline", token,
		`{"supplier":"Nordic Pharma","size":"100ml","units":30,"batch_number":"B-55","expected_date":"2026-10-01","status":"","notes":""}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "Ordered", created.Status, "empty status defaults to Ordered")

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/pipeline/%d/status", srv.URL, created.ID), token, `{"status":"Sideways"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/pipeline/%d/status", srv.URL, created.ID), token, `{"status":"In Transit"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/pipeline/%d/receive", srv.URL, created.ID), token, `{"cost":410,"expiry_date":"2028-01-31"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var received struct {
		PurchaseID int64  `json:"purchase_id"`
		Status     string `json:"status"`
	}
	decodeBody(t, resp, &received)
	require.NotZero(t, received.PurchaseID)
	assert.Equal(t, "Received", received.Status)

	// Receiving twice must not double-book the purchase.
	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/pipeline/%d/receive", srv.URL, created.ID), token, `{"cost":410,"expiry_date":""}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/purchases", token, "")
	var purchases []struct {
		Supplier   string `json:"supplier"`
		Units      int64  `json:"units"`
		Cost       string `json:"cost"`
		ExpiryDate string `json:"expiry_date"`
	}
	decodeBody(t, resp, &purchases)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Nordic Pharma", purchases[0].Supplier)
	assert.Equal(t, int64(30), purchases[0].Units)
	assert.Equal(t, "410", purchases[0].Cost)
	assert.Equal(t, "2028-01-31", purchases[0].ExpiryDate)
}

func TestUserManagementAndRoleGate(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/users", token,
		`{"username":"clerk","password":"clerk-pass","role":"user"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/users", token,
		`{"username":"clerk","password":"other","role":"user"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/users", token,
		`{"username":"x","password":"y","role":"superadmin"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	clerkToken := loginAs(t, srv, "clerk", "clerk-pass")

	// Regular users can use the data endpoints...
	resp = doRequest(t, http.MethodGet, srv.URL+"/customers", clerkToken, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// ...but not the admin surface.
	resp = doRequest(t, http.MethodGet, srv.URL+"/users", clerkToken, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/backup", clerkToken, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBackupAndRestore(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/customers", token,
		`{"name":"Medix GmbH","country":"Germany","contact_person":"","email":"","phone":"","notes":""}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, http.MethodPost, srv.URL+"/purchases", token,
		`{"supplier":"Alkem Labs","size":"5ml","batch_number":"B-1","expiry_date":"","units":10,"cost":50}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/backup", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap backup.Snapshot
	decodeBody(t, resp, &snap)
	require.NotEmpty(t, snap.ID)
	require.Len(t, snap.Customers, 1)
	require.Len(t, snap.Purchases, 1)
	assert.Empty(t, snap.Users, "users excluded unless requested")

	// Wreck the data, then restore.
	var customers []struct {
		ID int64 `json:"id"`
	}
	resp = doRequest(t, http.MethodGet, srv.URL+"/customers", token, "")
	decodeBody(t, resp, &customers)
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/customers/%d", srv.URL, customers[0].ID), token, "")
	resp.Body.Close()

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	resp = doRequest(t, http.MethodPost, srv.URL+"/restore", token, string(bytes.TrimSpace(raw)))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/customers", token, "")
	var restored []map[string]any
	decodeBody(t, resp, &restored)
	require.Len(t, restored, 1)
	assert.Equal(t, "Medix GmbH", restored[0]["name"])

	// Inserts after a restore must not collide with restored ids.
	resp = doRequest(t, http.MethodPost, srv.URL+"/customers", token,
		`{"name":"New Trade Co","country":"","contact_person":"","email":"","phone":"","notes":""}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSalesReportFilters(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/sales", token,
		`{"customer":"Medix GmbH","country":"Germany","size":"5ml","batch_number":"B-1","units":4,"price":90}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, http.MethodPost, srv.URL+"/sales", token,
		`{"customer":"Pharma Plus","country":"UAE","size":"10ml","batch_number":"B-2","units":2,"price":120}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	fetch := func(query string) []struct {
		Customer string `json:"customer"`
	} {
		t.Helper()
		resp := doRequest(t, http.MethodGet, srv.URL+"/reports/sales"+query, token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rows []struct {
			Customer string `json:"customer"`
		}
		decodeBody(t, resp, &rows)
		return rows
	}

	rows := fetch("?customer=Medix+GmbH")
	require.Len(t, rows, 1)
	assert.Equal(t, "Medix GmbH", rows[0].Customer)

	assert.Len(t, fetch("?start_date=2000-01-01&end_date=2099-01-01"), 2)
	assert.Empty(t, fetch("?start_date=2099-01-01"), "window after all sales")
	assert.Len(t, fetch("?end_date=2099-01-01"), 2)

	resp = doRequest(t, http.MethodGet, srv.URL+"/reports/sales?start_date=bogus", token, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/reports/sales?end_date=01-02-2026", token, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetPassword(t *testing.T) {
	srv := newTestServer(t)

	// The route sits behind the auth middleware.
	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/reset-password", "", `{"new_password":"x"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := adminToken(t, srv)

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/reset-password", token, `{"new_password":""}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/reset-password", token, `{"new_password":"swapped-it"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/login", "",
		fmt.Sprintf(`{"username":"admin","password":%q}`, testAdminPassword))
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "old password must stop working")

	loginAs(t, srv, "admin", "swapped-it")
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	resp := doRequest(t, http.MethodPost, srv.URL+"/sales", token,
		`{"customer":"Medix GmbH","country":"Germany","size":"5ml","batch_number":"B-1","units":4,"price":85.50}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/export/sales.csv", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales.csv")

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,customer,country,size,batch_number,units,price,converted_from,original_hold_id,created_at", lines[0])
	assert.Contains(t, lines[1], "Medix GmbH")
	assert.Contains(t, lines[1], "85.5")

	resp = doRequest(t, http.MethodGet, srv.URL+"/export/nonsense.csv", token, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
