// Package cli provides the interactive Knowledge Platform command-line
// client.
//
// It wires configuration, the local cache database, the authenticated API
// client and the session manager into an interactive REPL. Typical flow:
// restore the persisted session, then execute user commands until "exit".
//
// Key features:
//   - Login / Register / Logout with a persisted session
//   - Browse, upload and moderate documents
//   - Ask questions and review past answers (with an offline cache)
//   - Submit feedback, view analytics and audit logs
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
