// Package api exposes the task runner over HTTP. It handles request
// decoding and validation, maps internal errors to status codes, and formats
// JSON responses. Operators submit probe targets, inspect tasks and queue
// state, and pause, resume, start or clear the queue.
package api
