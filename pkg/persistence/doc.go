/*
Package persistence mirrors the wizard answers to a key-value store.

The Adapter restores the stored record into a session store at startup and then
subscribes to the store so every data mutation is written back. Persistence is
fail-soft: read, parse and write failures are logged and never reach the session.
*/
package persistence
