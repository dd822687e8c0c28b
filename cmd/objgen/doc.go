// Command objgen generates managed-class scaffolding from a YAML manifest.
//
// The manifest lists capability interfaces and classes (name, parent,
// implemented interfaces, footprint, constructor signatures). objgen emits a
// single Go file with the om.DeclareInterface / om.Declare var block and one
// factory function per declared constructor signature, each forwarding its
// exact argument list through om.New.
//
// Usage:
//
//	objgen --manifest classes.yaml --out classes.gen.go
//
// Flags may also be supplied via OBJGEN_* environment variables
// (OBJGEN_MANIFEST, OBJGEN_OUT, OBJGEN_PACKAGE).
//
// The output is formatted with go/format and written atomically, so readers
// never observe a partial file.
package main
