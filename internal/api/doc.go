// Package api serves the pipeline over HTTP and defines the JSON payloads it
// exchanges.
//
// # Endpoints
//
//	GET  /                                 this endpoint list
//	GET  /api/status                       project root, registered steps
//	GET  /api/episodes                     ep[0-9]{4} directories, sorted
//	POST /api/episodes/{episode}/generate  run steps ({"steps": [...], "force": bool})
//	GET  /api/episodes/{episode}/files     files under the episode, root-relative
//	GET  /api/file?path=                   text of one file inside the project root
//	GET  /api/shotlist/summary?episode=    shot counts and runtime
//	GET  /api/runs?episode=&limit=         recorded runs, newest first
//
// Errors are JSON objects {"error": "...", "kind": "..."} where kind is the
// services classification. When a token is configured every request must
// carry "Authorization: Bearer <token>".
package api
