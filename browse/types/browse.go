package types

type SelectRequest struct {
	Folder string `json:"folder" binding:"required" example:"keys"`
}
