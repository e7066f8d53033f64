package db

import "errors"

// Domain-level database error sentinels.
var (
	// Corpus errors
	ErrCorpusEmpty = errors.New("corpus has no keywords")

	// Variant errors
	ErrVariantNotFound  = errors.New("keyword variant not found")
	ErrDuplicateVariant = errors.New("keyword variant already exists for this request")
)
