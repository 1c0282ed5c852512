// Package cli provides the interactive Visual Caption command-line client.
//
// It wires configuration, the local state store, the backend API client,
// the inference clients and an interactive REPL organized around screens:
// sign-in/sign-up, the home screen (caption generation, video preview,
// history, feedback) and the admin screens (stats, users, captions,
// feedback management). Every navigation goes through the route guard, so
// a command typed on the wrong screen redirects the same way the web UI
// would.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
