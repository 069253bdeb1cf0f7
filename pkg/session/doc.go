/*
Package session implements the typed step data store of the wizard.

It provides high-level abstractions for handling concurrent access to
per-session step data, integrating local locking with distributed
locking and long-term storage adapters. Keys follow the layout
form:<formID>:step:<n> / form:<formID>:consolidated /
form:<formID>:visited on top of the raw ports.SessionStore.
*/
package session
