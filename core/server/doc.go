// Package server holds the HTTP server configuration and the Fiber application
// bootstrap shared by every command that serves traffic.
//
// # Configuration
//
// The Config struct defines the bind host and port. The port defaults to 3000.
//
// # Application
//
// NewApp returns a Fiber app with the RayID and request logging middleware
// installed and an OnListen hook that prints StartupMessage once the socket is
// bound. Features register their routes on the returned app through the loader.
package server
