package ingest

import "errors"

var (
	ErrSourceUnavailable = errors.New("ingest: upstream dataset is unavailable")
	ErrPayloadInvalid    = errors.New("ingest: dataset payload failed validation")
	ErrSnapshotMissing   = errors.New("ingest: no local snapshot available")
)
