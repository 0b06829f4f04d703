// Package main runs an in-memory stand-in for the Netskope URL list API, for
// local dry runs of urllistsync against a fake tenant.
//
// HTTP API (all under /api/v2, Bearer token required)
//
//	GET   /policy/urllist            List every URL list.
//	POST  /policy/urllist            Create a list {name, data:{urls, type}}.
//	GET   /policy/urllist/{id}       Return one list with its urls.
//	PUT   /policy/urllist/{id}       Replace the list content.
//	PATCH /policy/urllist/{id}/append  Add urls, skipping ones already present.
//	POST  /policy/urllist/deploy     Count a deploy.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Bodies over 7 MiB are rejected with 413, like the real service.
//   - --seed NAME pre-creates empty lists; --create-shape and --list-shape
//     select the reply encodings the client has to cope with.
//   - Each request is logged with method, path, status, bytes and duration.
//
// Point the CLI at it with -n http://127.0.0.1:8080.
package main
