package tokencache

import "errors"

var (
	// ErrInvalidTokenID is returned for keys that are not 64 lowercase hex characters.
	ErrInvalidTokenID = errors.New("tokencache: invalid token id")
	// ErrMetadataFetchFailed wraps failures of the metadata collaborator.
	ErrMetadataFetchFailed = errors.New("tokencache: metadata fetch failed")
)
