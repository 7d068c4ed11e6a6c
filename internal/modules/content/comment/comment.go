// Package comment implements the comment module: CRUD, moderation and the
// cascading delete of whole reply threads.
//
// Files in this package:
//   - types.go     : DTOs, results and error messages
//   - repository.go: Repository interface and its MongoDB implementation
//   - tree.go      : level-by-level subtree collection
//   - service.go   : Service struct and all business-logic methods
//   - handler.go   : Handler struct, route registration, and HTTP handlers
//   - helpers.go   : id parsing and normalization helpers
package comment
