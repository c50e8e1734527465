// Package cli provides the interactive campus events command-line client.
//
// It wires configuration, the local credential store, the HTTP adapter,
// the session manager, and the realtime notification channel into an
// interactive REPL. Typical flow: restore the saved session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Register / Logout against the campus events backend
//   - Browse events, register for them, list own registrations
//   - Notification inbox with live updates over the realtime channel
//   - Backend health probe with an online/offline prompt indicator
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartHealthWatcher, and runREPL for details.
package cli
