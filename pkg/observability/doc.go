/*
Package observability provides Prometheus instrumentation for the
Formwise engine: step render and submission counters, validation
failure counts, navigation decisions by kind, and option fetch
degradations.
*/
package observability
