/*
Package domain contains the core domain models for the Formwise engine.

It defines the fundamental entities of a wizard: Forms, Steps, Fields,
and the navigation Rules that decide which step follows another. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Form: The immutable parsed definition of a wizard (ordered steps plus global rules).
  - Step: One page of fields with metadata (termination flag, legacy per-field navigation).
  - Field: A single question with a type, required flag, and options for choice fields.
  - Rule: A multi-condition global navigation rule evaluated against all collected answers.
  - Outcome: A structural representation of what the host should render or redirect to.
*/
package domain
