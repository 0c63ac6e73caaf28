package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for the report processing failure classes
var (
	// ErrTagParse marks a document that cannot be interpreted as any known layout
	ErrTagParse = goerr.NewTag("parse_error")
	// ErrTagValidation marks malformed finding or snapshot data
	ErrTagValidation = goerr.NewTag("validation_error")
	// ErrTagDuplicateKey marks a finding list that repeats a (severity, finding type) pair
	ErrTagDuplicateKey = goerr.NewTag("duplicate_key")
)

// Sentinel errors for domain operations
var (
	ErrSnapshotNotFound = goerr.New("snapshot not found")
	ErrProjectNotFound  = goerr.New("project not found")
)
