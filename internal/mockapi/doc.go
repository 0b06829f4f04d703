// Package mockapi is an in-memory stand-in for the policy service's URL
// list API. Tests mount Handler on an httptest server; cmd/mockapi serves
// it for local dry runs.
//
// Beyond the endpoints it can script status replies (FailNext), switch the
// creation response shape, reject bodies over a size limit, and record
// every call for sequencing assertions.
package mockapi
