package models

import "errors"

// Custom errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidResult      = errors.New("result must be win or loss")
	ErrInvalidFingerprint = errors.New("invalid fingerprint")
	ErrBatchTooLarge      = errors.New("batch exceeds maximum size")
)
