// Package om implements a declarative object model for managed classes.
//
// It models a class as a declaration (Declare) binding a concrete Go type to
// a name, a single parent class, and an ordered list of capability
// interfaces. Declaring a class yields, per class:
//
//   - a process-wide identity token (ClassID)
//   - capability/ancestor lookup via Query, with As for typed retrieval
//   - a construction entry point (New) returning a typed Handle
//   - a default Clone that reports CloneUnsupportedError until a class
//     overrides it
//   - a SizeOf query that answers shallow and deep (chained up the ancestry)
//     footprints
//
// Design goals:
//   - Declarative: one Declare per class, usually in a package-level var
//     block, next to the type it describes.
//   - Explicit hierarchy: a single linear parent chain rooted at Root(); no
//     diamond ambiguity by construction.
//   - Safe defaults: duplicate or malformed declarations fail at
//     declaration time with typed panics, the closest Go analog to a
//     compile error.
//   - Reflection only at declaration time: queries walk pre-built tables.
//
// Concrete managed types embed Core and are constructed exclusively through
// New, which binds the instance to its class.
package om
