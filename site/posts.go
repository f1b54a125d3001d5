package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dealdesk/database"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type postRequest struct {
	Title        string          `json:"title" validate:"required"`
	Slug         string          `json:"slug"`
	Excerpt      string          `json:"excerpt"`
	Content      json.RawMessage `json:"content" validate:"required"`
	CategoryType string          `json:"categoryType"`
	Categories   []string        `json:"categories"`
	BankID       *uint           `json:"bankId"`
	Published    bool            `json:"published"`
}

func postFromRequest(req *postRequest, author *database.AdminUser) (*database.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = slug.Make(req.Title)
	}

	categories, err := json.Marshal(req.Categories)
	if err != nil {
		return nil, err
	}

	status := database.PostDraft
	if req.Published {
		status = database.PostPublished
	}

	return &database.Post{
		AdminUserID:  author.ID,
		Title:        req.Title,
		Slug:         req.Slug,
		Excerpt:      req.Excerpt,
		Content:      datatypes.JSON(req.Content),
		CategoryType: req.CategoryType,
		Categories:   datatypes.JSON(categories),
		Published:    req.Published,
		Status:       status,
	}, nil
}

// CreatePost inserts a new post. Slug uniqueness is enforced by the
// database; a conflict comes back as a 400 rather than being pre-checked.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	admin := requireAdmin(w, r)
	if admin == nil {
		return
	}

	var req postRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	post, err := postFromRequest(&req, admin)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid categories list")
		return
	}
	post.BankID = req.BankID

	if result := database.GetDB().Create(post); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "a post with the same slug already exists")
			return
		}
		respondInternal(w, r, result.Error, "failed to create post")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "post": post})
}

// ListPosts returns posts with their bank relation, optionally filtered
// by category type and status.
func ListPosts(w http.ResponseWriter, r *http.Request) {
	categoryType := r.URL.Query().Get("categoryType")

	var status database.PostStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = database.PostStatus(s)
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, "unknown status: "+s)
			return
		}
	}

	posts, err := database.ListPosts(categoryType, status)
	if err != nil {
		respondInternal(w, r, err, "failed to list posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "posts": posts})
}

func GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := database.GetPostWithSlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondInternal(w, r, err, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

func UpdatePost(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var post database.Post
	if result := database.GetDB().First(&post, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load post")
		return
	}

	var req postRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	updated, err := postFromRequest(&req, &database.AdminUser{Model: gorm.Model{ID: post.AdminUserID}})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid categories list")
		return
	}

	post.Title = updated.Title
	post.Slug = updated.Slug
	post.Excerpt = updated.Excerpt
	post.Content = updated.Content
	post.CategoryType = updated.CategoryType
	post.Categories = updated.Categories
	post.Published = updated.Published
	post.Status = updated.Status
	post.BankID = req.BankID

	if result := database.GetDB().Save(&post); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "a post with the same slug already exists")
			return
		}
		respondInternal(w, r, result.Error, "failed to update post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

func DeletePost(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var post database.Post
	if result := database.GetDB().First(&post, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load post")
		return
	}

	if result := database.GetDB().Delete(&post); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to delete post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
