/*
Package ports defines the driven ports (interfaces) for the value proposition wizard.

These interfaces decouple the session and storage helpers from concrete backends,
so the same wizard runs against memory, the filesystem or Redis.

# Key Interfaces

  - KVStore: a narrow key-value capability (get, set, delete, list by prefix).
*/
package ports
