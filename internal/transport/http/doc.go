// Package http contains the HTTP handlers for the rate comparison API.
// Handlers decode and validate v1 request contracts, delegate to the
// services layer, and render responses with go-chi/render; failures come
// back as RFC 7807 problem documents.
package http
