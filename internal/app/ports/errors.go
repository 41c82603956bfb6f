package ports

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrRegionUnloaded = errors.New("region unloaded")
)
