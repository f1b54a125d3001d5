package site

import (
	"net/http"

	"dealdesk/database"
	"dealdesk/logging"
	"dealdesk/templates"
)

// Dashboard renders the review queue for signed-in reviewers.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	user := getSignedInUserOrNil(r)
	if user == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	pending, err := database.ListPendingPosts(database.StatusPendingReview, "")
	if err != nil {
		respondInternal(w, r, err, "failed to list pending posts")
		return
	}

	props := templates.LayoutProps{Title: "Review queue", CurrentUser: user.Username}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ReviewQueuePage(props, pending).Render(w); err != nil {
		logging.Error().Err(err).Msg("failed to render dashboard")
	}
}
