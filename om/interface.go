package om

import (
	"reflect"
)

// Interface is the declaration of one capability a managed class may
// implement: a named set of operations with its own identity token.
//
// Interfaces may extend other interfaces; a class declaring an interface
// thereby supports every interface it transitively extends. The extends
// graph is fixed at declaration time and acyclic by construction (an
// interface can only extend interfaces that already exist).
type Interface struct {
	id      ClassID
	name    string
	rtype   reflect.Type
	extends []*Interface
}

// DeclareInterface registers a capability interface under a process-unique
// name and returns its declaration.
//
// The type parameter must be a Go interface type; managed classes declaring
// this capability are checked against it at class-declaration time.
//
// DeclareInterface panics with a typed error on malformed input (nil extends
// entry, non-interface type, duplicate name or type). Declarations normally
// live in package-level var blocks, so these panics surface at program start.
func DeclareInterface[I any](name string, extends ...*Interface) *Interface {
	rt := reflect.TypeOf((*I)(nil)).Elem()
	if rt.Kind() != reflect.Interface {
		panic(NotInterfaceError{Name: name, GotType: rt.String()})
	}
	for _, ext := range extends {
		if ext == nil {
			panic(ErrNilInterface)
		}
	}

	in := &Interface{
		id:      newClassID(interfaceScope, name),
		name:    name,
		rtype:   rt,
		extends: append([]*Interface(nil), extends...),
	}
	reg.addInterface(in)
	return in
}

// ID returns the interface's identity token.
func (i *Interface) ID() ClassID { return i.id }

// Name returns the name the interface was declared under.
func (i *Interface) Name() string { return i.name }

// Extends returns the interfaces this one directly extends.
func (i *Interface) Extends() []*Interface {
	return append([]*Interface(nil), i.extends...)
}

// supports reports whether this interface, or any interface it transitively
// extends, carries the requested token. The walk is breadth-first so the
// nearest declarer answers first; it terminates because the extends graph is
// acyclic.
func (i *Interface) supports(id ClassID) bool {
	queue := []*Interface{i}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next.id == id {
			return true
		}
		queue = append(queue, next.extends...)
	}
	return false
}

// LookupInterface returns the interface declared under name, if any.
func LookupInterface(name string) (*Interface, bool) {
	return reg.interfaceByName(name)
}
