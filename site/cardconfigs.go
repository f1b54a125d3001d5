package site

import (
	"encoding/json"
	"errors"
	"net/http"

	"dealdesk/database"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListCardConfigs returns enabled configs in sort order.
func ListCardConfigs(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	configs, err := database.ListEnabledCardConfigs()
	if err != nil {
		respondInternal(w, r, err, "failed to list card configs")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "configs": configs})
}

func GetCardConfig(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	config, err := database.GetCardConfig(chi.URLParam(r, "categoryType"))
	if err != nil {
		respondInternal(w, r, err, "failed to load card config")
		return
	}
	if config == nil {
		respondError(w, http.StatusNotFound, "card config not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "config": config})
}

type cardConfigRequest struct {
	RequiredFields []string `json:"requiredFields"`
	Layout         string   `json:"layout"`
	SortOrder      int      `json:"sortOrder"`
	Enabled        bool     `json:"enabled"`
}

// UpsertCardConfig creates or replaces the config for a category type.
func UpsertCardConfig(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req cardConfigRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	requiredFields, err := json.Marshal(req.RequiredFields)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid requiredFields list")
		return
	}

	categoryType := chi.URLParam(r, "categoryType")

	var config database.CardConfig
	result := database.GetDB().Where("category_type = ?", categoryType).First(&config)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondInternal(w, r, result.Error, "failed to load card config")
		return
	}

	config.CategoryType = categoryType
	config.RequiredFields = datatypes.JSON(requiredFields)
	config.Layout = req.Layout
	config.SortOrder = req.SortOrder
	config.Enabled = req.Enabled

	if result := database.GetDB().Save(&config); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to save card config")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "config": config})
}
