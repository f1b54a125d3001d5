package site

import (
	"encoding/json"
	"net/http"
	"testing"

	"dealdesk/database"
)

func upsertConfig(t *testing.T, router http.Handler, admin *database.AdminUser, categoryType string, sortOrder int, enabled bool) {
	t.Helper()
	body := map[string]any{
		"requiredFields": []string{"amount", "expiry"},
		"layout":         "standard",
		"sortOrder":      sortOrder,
		"enabled":        enabled,
	}
	rec := doJSON(t, router, http.MethodPut, "/api/admin/card-configs/"+categoryType, body, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert %q: got status %d: %s", categoryType, rec.Code, rec.Body.String())
	}
}

func TestCardConfigListOrderedAndEnabledOnly(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	upsertConfig(t, router, admin, "SPEND_OFFERS", 2, true)
	upsertConfig(t, router, admin, "CASHBACK", 1, true)
	upsertConfig(t, router, admin, "LOUNGE", 3, false)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/card-configs", nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Configs []database.CardConfig `json:"configs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Configs) != 2 {
		t.Fatalf("got %d configs, want 2 enabled", len(payload.Configs))
	}
	if payload.Configs[0].CategoryType != "CASHBACK" || payload.Configs[1].CategoryType != "SPEND_OFFERS" {
		t.Errorf("configs out of sort order: %q, %q", payload.Configs[0].CategoryType, payload.Configs[1].CategoryType)
	}
}

func TestCardConfigGet(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	upsertConfig(t, router, admin, "SPEND_OFFERS", 1, true)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/card-configs/SPEND_OFFERS", nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/card-configs/UNKNOWN", nil, admin)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown type: got status %d, want 404", rec.Code)
	}
}

func TestCardConfigUpsertReplacesExisting(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	upsertConfig(t, router, admin, "SPEND_OFFERS", 1, true)
	upsertConfig(t, router, admin, "SPEND_OFFERS", 5, false)

	var count int64
	database.GetDB().Model(&database.CardConfig{}).Count(&count)
	if count != 1 {
		t.Fatalf("upsert created a duplicate row, count=%d", count)
	}

	config, err := database.GetCardConfig("SPEND_OFFERS")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if config.SortOrder != 5 || config.Enabled {
		t.Errorf("got sortOrder=%d enabled=%v, want 5/false", config.SortOrder, config.Enabled)
	}
}

func TestCardConfigRequiresAdmin(t *testing.T) {
	resetDB(t)
	router := testRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/admin/card-configs", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}
