// Package netskope provides an HTTP implementation of domain.URLListAPI
// for the policy service's URL list endpoints.
//
// Supported operations:
//   - Listing all URL lists.
//   - Creating a list seeded with one chunk.
//   - Replacing a list's contents (PUT) and appending to it (PATCH).
//   - Reading a list to count its entries.
//   - Deploying pending changes.
//
// All requests are JSON over HTTP with a bearer token and accept a context.
// Transport wraps each call in the retry policy: 429 and 5xx gateway
// statuses, connection errors and timeouts are retried; 401/403 fail at
// once with domain.ErrUnauthorized. Other non-2xx statuses are returned as
// *APIError carrying the method, full URL and status.
//
// The service does not return one stable shape for created lists, so
// creation responses go through a single decoder that accepts the known
// shapes and fails closed on anything else.
package netskope
