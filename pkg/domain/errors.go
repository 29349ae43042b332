package domain

import "errors"

// ErrKeyNotFound is returned by key-value stores when a key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// ErrUnknownField is returned when an operation names a field that is not a list of AnswerData.
var ErrUnknownField = errors.New("unknown field")

// ErrIndexOutOfRange is returned when removing a list entry at a position that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrEmptyEntry is returned by input sanitation when nothing remains after trimming.
var ErrEmptyEntry = errors.New("entry is empty")

// ErrIncomplete is returned when the proposition cannot be composed because a required answer is missing.
var ErrIncomplete = errors.New("proposition inputs incomplete")
