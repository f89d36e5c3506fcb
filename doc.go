// Package jot is the Composition Root for the jot notes application.
//
// It connects the note repository (pkg/core) with the storage adapters
// (pkg/adapters) and the import/export codec (pkg/transfer) using the
// Hexagonal Architecture pattern.
//
// The whole collection lives as one JSON array under a single key of a
// key-value storage. Available adapters:
//
//   - **fs** (default): one file per key, atomic writes, change watching.
//   - **memory**: in-process map, for tests and throwaway sessions.
//   - **redis**: go-redis client.
//   - **sqlite**: a kv table.
//
// Usage:
//
//	svc, err := jot.New("./.jot", jot.WithLogger(logger))
//
//	n := svc.NewNote("Shopping", "milk")
//	_, err = svc.CreateNote(ctx, n)
//
//	hits, err := svc.SearchNotes(ctx, "milk")
package jot
