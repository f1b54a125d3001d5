package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dealdesk/constants"
	"dealdesk/database"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReviewQueueList returns pending posts with their source tweets,
// newest first. Status defaults to pending_review; an unknown status
// value is rejected rather than silently matching nothing.
func ReviewQueueList(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	status := database.StatusPendingReview
	if s := r.URL.Query().Get("status"); s != "" {
		status = database.PendingStatus(s)
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, "unknown status: "+s)
			return
		}
	}
	category := r.URL.Query().Get("category")

	pending, err := database.ListPendingPosts(status, category)
	if err != nil {
		respondInternal(w, r, err, "failed to list pending posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "posts": pending})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// ReviewQueueReject marks a pending post rejected. Re-rejecting an
// already-rejected post just rewrites the same state.
func ReviewQueueReject(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var pending database.PendingPost
	if result := database.GetDB().First(&pending, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "pending post not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load pending post")
		return
	}

	var req rejectRequest
	if r.Body != nil {
		// body is optional; a missing reason falls back to the default
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	reason := req.Reason
	if reason == "" {
		reason = constants.DEFAULT_REJECT_REASON
	}

	pending.Status = database.StatusRejected
	pending.AdminNotes = reason
	if result := database.GetDB().Save(&pending); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to reject pending post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

type updateRequest struct {
	ExtractedData json.RawMessage `json:"extractedData"`
	Category      string          `json:"category"`
}

// ReviewQueueUpdate stores manually reviewed field values. The edit
// counts as a full review, so the low-confidence markers are cleared and
// the post moves to pending_approval no matter where it was. Concurrent
// edits are last-write-wins.
func ReviewQueueUpdate(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.ExtractedData) == 0 || string(req.ExtractedData) == "null" {
		respondError(w, http.StatusBadRequest, "extractedData is required")
		return
	}

	var pending database.PendingPost
	if result := database.GetDB().First(&pending, chi.URLParam(r, "id")); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "pending post not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load pending post")
		return
	}

	pending.ExtractedData = datatypes.JSON(req.ExtractedData)
	pending.LowConfidenceFields = datatypes.JSON("[]")
	if req.Category != "" {
		pending.Category = req.Category
	}
	pending.Status = database.StatusPendingApproval

	if result := database.GetDB().Save(&pending); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to update pending post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ReviewQueueApprove promotes a reviewed pending post into a draft Post.
// Only pending_approval rows qualify. The pending row is kept, marked
// approved and linked to the created post.
func ReviewQueueApprove(w http.ResponseWriter, r *http.Request) {
	admin := requireAdmin(w, r)
	if admin == nil {
		return
	}

	var pending database.PendingPost
	result := database.GetDB().Preload("RawTweet").First(&pending, chi.URLParam(r, "id"))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "pending post not found")
			return
		}
		respondInternal(w, r, result.Error, "failed to load pending post")
		return
	}

	if pending.Status != database.StatusPendingApproval {
		respondError(w, http.StatusConflict, "pending post is not awaiting approval")
		return
	}

	post, err := buildPostFromPending(&pending, admin)
	if err != nil {
		respondInternal(w, r, err, "failed to build post from pending post")
		return
	}

	if err := createPostWithUniqueSlug(post); err != nil {
		respondInternal(w, r, err, "failed to create post from pending post")
		return
	}

	pending.Status = database.StatusApproved
	pending.PostID = &post.ID
	if result := database.GetDB().Save(&pending); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to mark pending post approved")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

// buildPostFromPending maps reviewed extracted data onto a draft Post.
// The whole extracted document becomes a single card_offer content block;
// the front end renders it with the category's card config.
func buildPostFromPending(pending *database.PendingPost, admin *database.AdminUser) (*database.Post, error) {
	var extracted map[string]any
	if len(pending.ExtractedData) > 0 {
		if err := json.Unmarshal(pending.ExtractedData, &extracted); err != nil {
			return nil, err
		}
	}

	title, _ := extracted["title"].(string)
	if title == "" {
		title = firstLine(pending.RawTweet.Content)
	}
	if len(title) > constants.MAX_TITLE_LENGTH {
		title = title[:constants.MAX_TITLE_LENGTH]
	}

	content, err := json.Marshal([]map[string]any{
		{"type": "card_offer", "data": extracted},
	})
	if err != nil {
		return nil, err
	}

	post := &database.Post{
		AdminUserID:  admin.ID,
		Title:        title,
		Slug:         slug.Make(title),
		Content:      datatypes.JSON(content),
		CategoryType: pending.Category,
		Published:    false,
		Status:       database.PostDraft,
	}

	if bankSlug, ok := extracted["bank"].(string); ok && bankSlug != "" {
		var bank database.Bank
		result := database.GetDB().Where("slug = ?", slug.Make(bankSlug)).First(&bank)
		if result.Error == nil {
			post.BankID = &bank.ID
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
	}

	return post, nil
}

// createPostWithUniqueSlug inserts the post, retrying with a numeric
// suffix when the slug collides with an existing one.
func createPostWithUniqueSlug(post *database.Post) error {
	base := post.Slug
	for attempt := 1; attempt <= constants.MAX_SLUG_ATTEMPTS; attempt++ {
		if attempt > 1 {
			post.Slug = base + "-" + strconv.Itoa(attempt)
		}
		result := database.GetDB().Create(post)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return result.Error
		}
	}
	return errors.New("could not find a free slug for " + base)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
