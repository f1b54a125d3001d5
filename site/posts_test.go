package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"dealdesk/database"
)

func TestCreatePostRequiresAdmin(t *testing.T) {
	resetDB(t)
	router := testRouter()
	regular := seedUser(t, "viewer", false)

	body := map[string]any{"title": "Offer", "content": []any{}}
	rec := doJSON(t, router, http.MethodPost, "/api/posts/create", body, regular)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}

	var count int64
	database.GetDB().Model(&database.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("non-admin create wrote %d post(s)", count)
	}
}

func TestCreatePostGeneratesSlug(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	body := map[string]any{
		"title":   "Big Spend Offer!",
		"content": []any{map[string]any{"type": "paragraph", "text": "hello"}},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/posts/create", body, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	post, err := database.GetPostWithSlug("big-spend-offer")
	if err != nil {
		t.Fatalf("slug lookup failed: %v", err)
	}
	if post == nil {
		t.Fatal("post not found under generated slug")
	}
	if post.Status != database.PostDraft || post.Published {
		t.Errorf("unpublished create should yield a draft, got %q published=%v", post.Status, post.Published)
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	body := map[string]any{"title": "Offer", "slug": "offer", "content": []any{}}
	rec := doJSON(t, router, http.MethodPost, "/api/posts/create", body, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: got status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/posts/create", body, admin)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: got status %d, want 400", rec.Code)
	}

	var count int64
	database.GetDB().Model(&database.Post{}).Count(&count)
	if count != 1 {
		t.Errorf("duplicate slug wrote an extra row, count=%d", count)
	}
}

func TestCreatePostMissingTitle(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	body := map[string]any{"content": []any{}}
	rec := doJSON(t, router, http.MethodPost, "/api/posts/create", body, admin)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestListPostsFiltersAndPreloadsBank(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	bank := database.Bank{Slug: "acme-bank", Name: "Acme Bank"}
	database.GetDB().Create(&bank)

	body := map[string]any{
		"title":        "Cashback deal",
		"content":      []any{},
		"categoryType": "CASHBACK",
		"bankId":       bank.ID,
		"published":    true,
	}
	rec := doJSON(t, router, http.MethodPost, "/api/posts/create", body, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d: %s", rec.Code, rec.Body.String())
	}

	body = map[string]any{"title": "Spend deal", "content": []any{}, "categoryType": "SPEND_OFFERS"}
	rec = doJSON(t, router, http.MethodPost, "/api/posts/create", body, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/posts?categoryType=CASHBACK", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got status %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Posts []database.Post `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(payload.Posts))
	}
	if payload.Posts[0].Bank == nil || payload.Posts[0].Bank.Slug != "acme-bank" {
		t.Errorf("bank relation not loaded: %+v", payload.Posts[0].Bank)
	}
}

func TestGetPostBySlugNotFound(t *testing.T) {
	resetDB(t)
	router := testRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/posts/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestUpdatePostSlugConflict(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	first := database.Post{AdminUserID: admin.ID, Title: "One", Slug: "one", Content: []byte("[]")}
	second := database.Post{AdminUserID: admin.ID, Title: "Two", Slug: "two", Content: []byte("[]")}
	database.GetDB().Create(&first)
	database.GetDB().Create(&second)

	body := map[string]any{"title": "Two", "slug": "one", "content": []any{}}
	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/admin/posts/%d", second.ID), body, admin)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestDeletePost(t *testing.T) {
	resetDB(t)
	router := testRouter()
	admin := seedUser(t, "admin", true)

	post := database.Post{AdminUserID: admin.ID, Title: "One", Slug: "one", Content: []byte("[]")}
	database.GetDB().Create(&post)

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", post.ID), nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	got, err := database.GetPostWithSlug("one")
	if err != nil {
		t.Fatalf("slug lookup failed: %v", err)
	}
	if got != nil {
		t.Error("post still visible after delete")
	}
}
