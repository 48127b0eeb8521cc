// Package state holds the scoped list containers: the works library and
// the generation/analysis history.
//
// # Scope keys
//
// Both containers cache per-identity data. The session derives a scope key
// ("guest" or "user:<id>"); on every load the container compares it with
// the key it last observed and clears its cached list when they differ.
// Data fetched for one identity must never remain visible after switching
// accounts or logging out.
//
// # Error policy
//
// The containers are the recovery boundary for HTTP errors:
//
//   - 404 is "no data yet" and yields an empty list (folded at the API
//     layer for the endpoints that use it).
//   - 401 clears the cached list and records a message without returning
//     an error; the session is what decides to log out, not the lists.
//   - Logged-out loads never reach the network: works records a
//     please-log-in message, history just clears.
//
// Loading flags always clear, whatever the outcome.
//
// # Concurrency
//
// Containers are mutex-guarded and hand out defensive copies, so the UI
// goroutine and background refreshes never share slices.
package state
