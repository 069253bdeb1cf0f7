/*
Package ports defines the driven ports (interfaces) for the Formwise engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various session backends, definition
sources, and renderers.

# Key Interfaces

  - DefinitionSource: Responsible for loading validated form definitions.
  - SessionStore: Responsible for persisting per-session step data.
  - OptionSource: Fetches option lists for choice fields from an upstream service.
  - Renderer: Turns a render context into a response body.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
