package http

import "github.com/arteralabs/artera/internal/storage"

// CreateFolderRequest is the body of POST /api/folders/create.
type CreateFolderRequest struct {
	Path string `json:"path" binding:"required"`
}

// DeleteFolderRequest is the body of DELETE /api/folders/delete. Recursive
// defaults to true when omitted.
type DeleteFolderRequest struct {
	Path      string `json:"path" binding:"required"`
	Recursive *bool  `json:"recursive"`
}

// MessageResponse is the generic mutation response.
type MessageResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// UploadResponse extends MessageResponse with the sniffed content type.
type UploadResponse struct {
	Message     string `json:"message"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
}

// ListResponse is the body of GET /api/files/list.
type ListResponse struct {
	Items      []storage.Entry `json:"items"`
	TotalCount int             `json:"total_count"`
}

// TreeResponse is the body of GET /api/files/tree.
type TreeResponse struct {
	Tree         []*storage.TreeNode `json:"tree"`
	TotalFiles   int                 `json:"total_files"`
	TotalFolders int                 `json:"total_folders"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the successful login response. ExpiresIn is in minutes,
// matching JWT_ACCESS_TOKEN_EXPIRE_MINUTES.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
