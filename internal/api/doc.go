// Package api exposes the resolved configuration snapshot over HTTP so that
// operators and sidecar processes can inspect what the daemon actually
// resolved, without reading the process environment themselves.
package api
