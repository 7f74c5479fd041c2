// Package todo implements the project registry: the single owner and writer
// of the project/task graph.
//
// A Registry is built with New and becomes usable after Init loads the
// persisted snapshot (or installs the defaults: Inbox, Today, Upcoming and an
// empty Projects section). Every successful mutation writes the whole
// snapshot back through the Storage it was built with.
//
// # Sections
//
// Projects live in two ordered sections:
//
//   - "default": the built-in projects. Inbox is the default project; Today
//     and Upcoming are computed views whose task lists are rebuilt from the
//     live graph before every read.
//   - "userProjects": projects created by the user.
//
// # Failure
//
// Lookups report absence with a boolean. Mutations return ErrProjectNotFound
// or ErrTaskNotFound for unknown ids and never persist on those paths, so
// repeating a stale request is harmless.
//
// # Sharing
//
// Returned projects and tasks are live objects shared with the registry.
// Callers must change them only through Registry methods.
package todo
