package constants

// Common request/session error messages
const (
	ErrInvalidSession   = "invalid user_id or session"
	ErrInvalidJSON      = "invalid json or missing fields"
	ErrUserIDRequired   = "user_id required"
	ErrMultipartParse   = "failed to parse multipart form"
	ErrNoFileUploaded   = "no file uploaded"
	ErrMethodNotAllowed = "Method Not Allowed"
)

// DB / SQL error templates
const (
	ErrTxStartFailed  = "failed to start transaction: "
	ErrTxCommitFailed = "failed to commit transaction: "
	ErrQueryFailed    = "query failed: "
	ErrDBConnection   = "database connection failed"
)

// Request keys
const (
	KeyUserID = "user_id"
)

// Content Types
const (
	ContentTypeJSON   = "application/json"
	ContentTypeHeader = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)
