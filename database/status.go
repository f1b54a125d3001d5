package database

// PendingStatus is the moderation state of a PendingPost.
type PendingStatus string

const (
	StatusPendingReview   PendingStatus = "pending_review"
	StatusPendingApproval PendingStatus = "pending_approval"
	StatusApproved        PendingStatus = "approved"
	StatusRejected        PendingStatus = "rejected"
)

func (s PendingStatus) Valid() bool {
	switch s {
	case StatusPendingReview, StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PostStatus is the publication state of a Post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}
