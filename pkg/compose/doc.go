// Package compose renders the value proposition sentence and the exported summary
// document from an answer record. Every function is pure.
package compose
