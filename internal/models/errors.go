package models

import "errors"

// Sentinel errors for entity lookups.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrNoLayout        = errors.New("no active layout")
	ErrNoGraph         = errors.New("no graph built for session")
)

// ErrDatasetUnavailable indicates no dataset has been loaded yet.
var ErrDatasetUnavailable = errors.New("dataset not loaded")
