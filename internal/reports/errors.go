package reports

import "errors"

var (
	ErrLayerInvalid = errors.New("reports: map layer kind is not recognized")
)
