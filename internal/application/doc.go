// Package application provides application initialization and dependency
// wiring. It derives the daemon's own settings from the resolved
// configuration snapshot and assembles the HTTP server, keeping the main
// package focused on CLI parsing and orchestration.
package application
