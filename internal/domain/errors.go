package domain

import "errors"

var (
	// ErrUnauthorized is returned for HTTP 401/403. It is never retried.
	ErrUnauthorized = errors.New("authorization failed; check the API token")

	// ErrListNotFound means the named list does not exist and creation was
	// not requested.
	ErrListNotFound = errors.New("url list not found; use --create to create it")

	// ErrMalformedResponse marks an API body that matches none of the
	// tolerated shapes.
	ErrMalformedResponse = errors.New("unexpected API response shape")

	// ErrNoDomains means a source produced zero valid domains.
	ErrNoDomains = errors.New("no valid domains found")

	// ErrSourceNotFound means a local source file does not exist.
	ErrSourceNotFound = errors.New("source file does not exist")
)
