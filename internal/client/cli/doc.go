// Package cli provides the interactive myadmin terminal client.
//
// NewApp wires configuration, the local SQLite storage, the REST client,
// the auth session, the six entity stores, the dashboard and the activity
// feed. App.Run shows the landing page (asking for credentials when no
// valid session was restored) and then blocks in a REPL until the user
// exits.
//
// Every command navigates first, so the router guard decides whether it
// may run: an expired or rejected session sends the user back to login.
//
// Commands:
//   - login / logout / profile
//   - dashboard, activity
//   - list / show / create / update / delete <entity>
//   - export <entity> <csv|json|print>
//   - theme, back, help, exit
package cli
