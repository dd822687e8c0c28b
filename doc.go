// Package omo provides scaffolding for managed object models in Go.
//
// Declaring a class once, with its parent and the capability interfaces it
// implements, yields the cross-cutting facilities that would otherwise be
// hand-written per class in a large class library:
//
//   - typed Handle/View/Holder reference wrappers
//   - a process-wide class identity token
//   - safe capability/ancestor casting via runtime query
//   - constructor-forwarding factories
//   - a default (unsupported) clone and a recursive deep-size query
//
// The goal is to keep class declarations explicit (one Declare per class,
// usually in a package-level var block), avoid reflection on hot paths, and
// keep the surface area intentionally small.
//
// See subpackages:
//   - om: the object-model library
//   - cmd/objgen: code generator emitting class declarations and factories
//     from a YAML manifest
//   - examples/zoo: a runnable example hierarchy
package omo
