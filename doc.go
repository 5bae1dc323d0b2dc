// Package friendsclient is a thin HTTP client layer for the mobile app
// backend: reachability gating, request building, response classification
// and typed services. The importable pieces live under pkg/.
package friendsclient
