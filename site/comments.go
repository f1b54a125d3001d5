package site

import (
	"errors"
	"net/http"
	"strings"

	"dealdesk/constants"
	"dealdesk/database"

	"gorm.io/gorm"
)

type commentRequest struct {
	PostID  uint   `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// CreateComment attaches a comment to a post. Any signed-in user may
// comment, not just admins.
func CreateComment(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req commentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	if len(req.Content) > constants.MAX_COMMENT_LENGTH {
		respondError(w, http.StatusBadRequest, "comment too long")
		return
	}

	var post database.Post
	if result := database.GetDB().First(&post, req.PostID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusBadRequest, "unknown post")
			return
		}
		respondInternal(w, r, result.Error, "failed to load post")
		return
	}

	comment := database.Comment{PostID: post.ID, AdminUserID: user.ID, Content: req.Content}
	if result := database.GetDB().Create(&comment); result.Error != nil {
		respondInternal(w, r, result.Error, "failed to create comment")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "comment": comment})
}

// ListComments returns comments for a post, oldest first.
func ListComments(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	if postID == "" {
		respondError(w, http.StatusBadRequest, "postId is required")
		return
	}

	var comments []database.Comment
	result := database.GetDB().Where("post_id = ?", postID).Order("created_at ASC").Find(&comments)
	if result.Error != nil {
		respondInternal(w, r, result.Error, "failed to list comments")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "comments": comments})
}
