package site

import (
	"errors"
	"net/http"
	"strings"

	"dealdesk/database"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func ListBanks(w http.ResponseWriter, r *http.Request) {
	var banks []database.Bank
	if result := database.GetDB().Order("name ASC").Find(&banks); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to list banks")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "banks": banks})
}

type bankRequest struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug"`
	LogoPath string `json:"logoPath"`
}

func CreateBank(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req bankRequest
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

	bank := database.Bank{Slug: req.Slug, Name: req.Name, LogoPath: req.LogoPath}
	if result := database.GetDB().Create(&bank); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "a bank with the same slug already exists")
			return
		}
		respondInternal(w, r, result.Error, "failed to create bank")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "bank": bank})
}

func UpdateBank(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var bank database.Bank
	if result := database.GetDB().First(&bank, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "bank not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load bank")
		return
	}

	var req bankRequest
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

	bank.Name = req.Name
	bank.Slug = req.Slug
	bank.LogoPath = req.LogoPath

	if result := database.GetDB().Save(&bank); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "a bank with the same slug already exists")
			return
		}
		respondInternal(w, r, result.Error, "failed to update bank")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "bank": bank})
}

func DeleteBank(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var bank database.Bank
	if result := database.GetDB().First(&bank, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "bank not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load bank")
		return
	}

	if result := database.GetDB().Delete(&bank); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to delete bank")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
