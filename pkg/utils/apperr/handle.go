package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
)

// Class names the failure class of an error for logs and API responses
type Class string

const (
	ClassParse        Class = "parse_error"
	ClassValidation   Class = "validation_error"
	ClassDuplicateKey Class = "duplicate_key"
	ClassNotFound     Class = "not_found"
	ClassInternal     Class = "internal_error"
)

// Classify returns the failure class of err
func Classify(err error) Class {
	switch {
	case goerr.HasTag(err, model.ErrTagParse):
		return ClassParse
	case goerr.HasTag(err, model.ErrTagValidation):
		return ClassValidation
	case goerr.HasTag(err, model.ErrTagDuplicateKey):
		return ClassDuplicateKey
	case errors.Is(err, model.ErrSnapshotNotFound), errors.Is(err, model.ErrProjectNotFound):
		return ClassNotFound
	default:
		return ClassInternal
	}
}

// Handle logs err. Rejected reports are logged as warnings, everything else as errors.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	class := Classify(err)

	if class == ClassInternal {
		logger.Error("application error", "error", err, "class", class)
		return
	}
	logger.Warn("request rejected", "error", err, "class", class)
}

// KeepClass carries the failure class of err onto an error wrapping it
func KeepClass(err error) goerr.Option {
	switch Classify(err) {
	case ClassParse:
		return goerr.T(model.ErrTagParse)
	case ClassValidation:
		return goerr.T(model.ErrTagValidation)
	case ClassDuplicateKey:
		return goerr.T(model.ErrTagDuplicateKey)
	default:
		return goerr.V("class", Classify(err))
	}
}
