// Package chat implements the session and room state coordinator for the
// Parlor chat service.
//
// The coordinator owns the identity and room registries and serializes every
// state transition behind a single mutex. Each inbound command produces an
// ordered list of notifications that the transport layer delivers; the core
// never talks to sockets directly.
package chat
