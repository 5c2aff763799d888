// Package httputil provides the JSON plumbing shared by the HTTP API
// handlers.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps a
// structured error from pkg/errors to an HTTP status via [StatusFor] and
// writes it as:
//
//	{"error": {"code": "WIDGET_NOT_FOUND", "message": "no widget with id \"x\""}}
//
// # Requests
//
// [DecodeJSON] reads a size-limited request body and rejects trailing
// data. Decoding failures are reported as INVALID_INPUT so they surface
// as 400 responses.
package httputil
