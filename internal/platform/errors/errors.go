package apperrors

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrKitchenClosed         = errors.New("daily session target reached")
	ErrSessionActive         = errors.New("session already active for area")
	ErrSessionCompleted      = errors.New("session already completed")
	ErrNoSession             = errors.New("no session for area")
	ErrPhotoRequired         = errors.New("photo is required")
	ErrInvalidPhotoData      = errors.New("invalid photo data")
	ErrJudgingFailed         = errors.New("verification judging failed")
	ErrGoldenNotEligible     = errors.New("golden tier is not eligible")
	ErrNoPendingVerification = errors.New("no pending verification")
	ErrInsufficientPoints    = errors.New("insufficient points")
)
