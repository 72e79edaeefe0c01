// Package server implements the WebSocket transport and HTTP surface for the
// Parlor chat service.
//
// The package is glue: it upgrades connections, translates wire frames into
// coordinator commands, and delivers the resulting notifications. All chat
// semantics live in the chat package.
package server
