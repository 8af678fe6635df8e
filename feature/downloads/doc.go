// Package downloads records which artifacts were served, and to whom.
//
// The audit is optional and only active when the database is enabled. Each
// successful artifact GET inserts one Download row; the downloads command
// aggregates them per artifact. Recording never changes the HTTP response.
package downloads
