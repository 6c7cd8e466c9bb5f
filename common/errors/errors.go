package errors

import stderrors "errors"

var (
	ErrAuthRequired     = stderrors.New("authentication required")
	ErrInvalidToken     = stderrors.New("invalid token")
	ErrInvalidTokenType = stderrors.New("invalid token type")

	ErrInvalidInput    = stderrors.New("invalid input")
	ErrUploadFailed    = stderrors.New("upload failed")
	ErrFileSizeInvalid = stderrors.New("file size invalid")
	ErrSessionNotFound = stderrors.New("browse session not found")
	ErrFolderNotFound  = stderrors.New("folder not found")

	ErrServiceUnavailable = stderrors.New("service unavailable")
	ErrInternalServer     = stderrors.New("internal server error")
)
