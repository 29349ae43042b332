/*
Package session implements the wizard's session state store.

The Store is the single owner of the SessionState: every consumer (terminal
wizard, HTTP handlers, MCP tools) receives the same *Store and mutates it only
through its operations. Data mutations are published to subscribers, which is
how the persistence adapter mirrors the answers to durable storage.
*/
package session
