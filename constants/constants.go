package constants

const (
	APP_NAME              = "DealDesk"
	DEFAULT_REJECT_REASON = "Rejected by admin"
	MAX_TITLE_LENGTH      = 300
	MAX_COMMENT_LENGTH    = 2000
	MAX_SLUG_ATTEMPTS     = 5
	MAX_CATEGORY_DEPTH    = 2
)
