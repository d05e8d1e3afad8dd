// Package httputil provides shared HTTP response utilities for the relay's
// handlers.
//
// The relay's wire contract is plain-text reason bodies for failures, fixed
// text or empty bodies for non-message successes, and a JSON object for a
// retrieved message. Handlers go through these helpers instead of writing
// raw http.ResponseWriter calls so formatting stays consistent.
package httputil
