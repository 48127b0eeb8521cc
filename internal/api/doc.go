// Package api provides the HTTP client for the Canto platform API.
//
// # Overview
//
// This package is the single place that talks to the backend. It owns base
// URL resolution, bearer-token attachment, JSON and multipart encoding, and
// the normalization of backend error payloads into short user-facing
// messages. Everything above it (session, list containers, player, CLI)
// works with typed results and never inspects raw HTTP responses.
//
// # Architecture
//
//   - client.go: request core (do/get/post/put/delete), base URL handling
//   - errors.go: Error/DecodeError types and error-message normalization
//   - types.go:  payload types shared across resources
//   - auth.go, works.go, history.go, search.go, social.go, emotion.go,
//     dialogue.go, discover.go: fixed-path wrappers, one file per resource
//
// # Client Usage
//
//	client, err := api.NewClient(cfg.BaseURL, session, log)
//	if err != nil {
//		return fmt.Errorf("init api client: %w", err)
//	}
//	works, err := client.FetchWorks(ctx, api.WorksQuery{UserID: id})
//
// # Error Handling
//
// Non-2xx responses become *Error carrying the HTTP status and a normalized
// message. Callers branch on the status with IsNotFound/IsUnauthorized;
// several list endpoints already fold 404 into an empty result the way the
// web client does. Responses that are 2xx but not valid JSON become
// *DecodeError. An empty 2xx body leaves the destination at its zero value.
package api
