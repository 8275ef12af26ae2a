package services

import "errors"

var (
	// ErrNoCriteria means the JD produced no usable criteria, so nothing can be scored.
	ErrNoCriteria = errors.New("no criteria for job description")
	// ErrBackendParse marks a model reply that held no decodable JSON object.
	ErrBackendParse = errors.New("could not parse model reply")
	// ErrExportEmpty is returned when no score record matches an export filter.
	ErrExportEmpty = errors.New("nothing to export")
)
