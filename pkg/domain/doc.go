/*
Package domain contains the core models of the value proposition wizard.

It defines the answer record collected across the five wizard steps, the session
snapshot that wraps it, and the hooks used to observe mutations. This package is
kept pure and free of I/O, persistence or presentation concerns.

# Key Entities

  - AnswerData: the single mutable record holding every answer.
  - Patch: a partial AnswerData used for shallow merges.
  - SessionState: the wizard snapshot (answers, current step, completion flag).
  - LifecycleHooks: callbacks fired by the session store for observability.
*/
package domain
