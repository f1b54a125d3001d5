package site

import (
	"errors"
	"net/http"
	"strings"

	"dealdesk/constants"
	"dealdesk/database"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ListCategories returns the category tree: roots with children, in
// creation order.
func ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := database.ListCategoryTree()
	if err != nil {
		respondInternal(w, r, err, "failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "categories": categories})
}

type categoryRequest struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug"`
	ParentID *uint  `json:"parentId"`
}

// checkParent verifies the parent exists and that attaching under it
// keeps the tree acyclic and within the depth limit. selfID is zero for
// creates.
func checkParent(parentID uint, selfID uint) (int, string) {
	var parent database.Category
	if result := database.GetDB().First(&parent, parentID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return http.StatusBadRequest, "parent category not found"
		}
		return http.StatusInternalServerError, "failed to load parent category"
	}

	// walk up from the parent; hitting selfID would form a cycle
	current := &parent
	for {
		if selfID != 0 && current.ID == selfID {
			return http.StatusBadRequest, "category cannot be its own ancestor"
		}
		if current.ParentID == nil {
			break
		}
		var next database.Category
		if result := database.GetDB().First(&next, *current.ParentID); result.Error != nil {
			return http.StatusInternalServerError, "failed to walk category ancestry"
		}
		current = &next
	}

	depth, err := database.CategoryDepth(parentID)
	if err != nil {
		return http.StatusInternalServerError, "failed to compute category depth"
	}
	if depth+1 >= constants.MAX_CATEGORY_DEPTH {
		return http.StatusBadRequest, "category nesting too deep"
	}
	return 0, ""
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req categoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}

	if req.ParentID != nil {
		if status, msg := checkParent(*req.ParentID, 0); status != 0 {
			respondError(w, status, msg)
			return
		}
	}

	category := database.Category{Name: req.Name, Slug: req.Slug, ParentID: req.ParentID}
	if result := database.GetDB().Create(&category); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "a category with the same slug already exists")
			return
		}
		respondInternal(w, r, result.Error, "failed to create category")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "category": category})
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var category database.Category
	if result := database.GetDB().First(&category, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load category")
		return
	}

	var req categoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}

	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			respondError(w, http.StatusBadRequest, "category cannot be its own parent")
			return
		}
		if status, msg := checkParent(*req.ParentID, category.ID); status != 0 {
			respondError(w, status, msg)
			return
		}
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.ParentID = req.ParentID

	if result := database.GetDB().Save(&category); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "a category with the same slug already exists")
			return
		}
		respondInternal(w, r, result.Error, "failed to update category")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "category": category})
}

func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var category database.Category
	if result := database.GetDB().First(&category, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load category")
		return
	}

	var childCount int64
	result := database.GetDB().Model(&database.Category{}).Where("parent_id = ?", category.ID).Count(&childCount)
	if result.Error != nil {
		respondInternal(w, r, result.Error, "failed to count child categories")
		return
	}
	if childCount > 0 {
		respondError(w, http.StatusBadRequest, "category still has children")
		return
	}

	if result := database.GetDB().Delete(&category); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to delete category")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
