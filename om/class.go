package om

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// ClassID is a process-wide identity token shared by a class and all of its
// instances. Tokens are stable SHA1-namespace UUIDs of the declared name, so
// two distinct declarations never collide and a given name maps to the same
// token in every process.
type ClassID uuid.UUID

// String renders the token in canonical UUID form.
func (id ClassID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the token is the zero value (no class).
func (id ClassID) IsZero() bool { return id == ClassID{} }

// Token scopes keep class and interface names in disjoint identity spaces.
const (
	classScope     = "om/class/"
	interfaceScope = "om/interface/"
)

func newClassID(scope, name string) ClassID {
	return ClassID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(scope+name)))
}

// Class is the runtime side of a class declaration: the identity token, the
// parent chain, the capability table, and the footprint figures. All fields
// are fixed at declaration time; concurrent reads need no locking.
type Class struct {
	id     ClassID
	name   string
	rtype  reflect.Type
	parent *Class
	ifaces []*Interface

	// shallow is the in-memory footprint of the concrete class; increment is
	// the part of it this level adds over its parent.
	shallow   uint64
	increment uint64
}

// classSpec collects declaration options before validation.
type classSpec struct {
	parent  *Class
	ifaces  []*Interface
	shallow uint64
	sized   bool
}

// Option configures one aspect of a class declaration.
type Option func(*classSpec)

// Extends declares the parent class. At most one line of ancestry exists per
// class; omitting Extends parents the class at Root().
func Extends(parent *Class) Option {
	return func(s *classSpec) {
		if parent == nil {
			panic(ErrNilParent)
		}
		s.parent = parent
	}
}

// Implements declares capability interfaces, in order. A class's capability
// set is the union of these and every interface declared by its ancestors.
func Implements(ifaces ...*Interface) Option {
	return func(s *classSpec) {
		for _, in := range ifaces {
			if in == nil {
				panic(ErrNilInterface)
			}
		}
		s.ifaces = append(s.ifaces, ifaces...)
	}
}

// WithSize overrides the shallow footprint of the concrete class. Without it
// the footprint is reflected from the Go type.
func WithSize(bytes uint64) Option {
	return func(s *classSpec) {
		s.shallow = bytes
		s.sized = true
	}
}

// Declare registers a managed class under a process-unique name and returns
// its Class.
//
// The type parameter is the concrete type instances will have (normally a
// pointer to a struct embedding Core). Declared interfaces are checked
// against it here: a class cannot claim a capability its Go type does not
// carry.
//
// Declare panics with a typed error on malformed declarations (duplicate
// name or type, unimplemented interface). Declarations normally live in
// package-level var blocks, so these panics surface at program start, the
// closest Go analog to the build-time rejection this mechanism wants.
func Declare[T Managed](name string, opts ...Option) *Class {
	spec := classSpec{parent: rootClass}
	for _, opt := range opts {
		opt(&spec)
	}

	rt := reflect.TypeOf((*T)(nil)).Elem()
	for _, in := range spec.ifaces {
		if !rt.Implements(in.rtype) {
			panic(NotImplementedError{Class: name, Interface: in.name})
		}
	}

	if !spec.sized {
		st := rt
		if st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		spec.shallow = uint64(st.Size())
	}
	increment := uint64(0)
	if spec.shallow > spec.parent.shallow {
		increment = spec.shallow - spec.parent.shallow
	}

	cls := &Class{
		id:        newClassID(classScope, name),
		name:      name,
		rtype:     rt,
		parent:    spec.parent,
		ifaces:    spec.ifaces,
		shallow:   spec.shallow,
		increment: increment,
	}
	reg.addClass(cls)
	return cls
}

// ID returns the class's identity token.
func (c *Class) ID() ClassID { return c.id }

// Name returns the name the class was declared under.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class, or nil for the universal root.
func (c *Class) Parent() *Class { return c.parent }

// Interfaces returns the directly declared capability interfaces, in
// declaration order.
func (c *Class) Interfaces() []*Interface {
	return append([]*Interface(nil), c.ifaces...)
}

// Supports reports whether an instance of this class would answer a
// capability query for the token. Same walk as cast, without an instance.
func (c *Class) Supports(id ClassID) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.id == id {
			return true
		}
		for _, in := range cur.ifaces {
			if in.supports(id) {
				return true
			}
		}
	}
	return false
}

// cast answers a capability query for the given instance.
//
// Lookup order: this class's own token first, then a breadth-first scan of
// its directly declared interfaces (each interface answers over its extends
// graph), then the parent class, recursively up to the root. Own interfaces
// before ancestor interfaces means the most-derived declarer of a
// capability wins. A nil result means the capability is absent; it is not
// an error.
func (c *Class) cast(self Managed, id ClassID) any {
	if c.id == id {
		return self
	}
	for _, in := range c.ifaces {
		if in.supports(id) {
			return self
		}
	}
	if c.parent != nil {
		return c.parent.cast(self, id)
	}
	return nil
}

// sizeOf answers the footprint query. Shallow is the concrete class's own
// footprint; deep chains the parent's deep size plus this level's increment
// and bottoms out at the root's base footprint.
func (c *Class) sizeOf(deep bool) uint64 {
	if !deep {
		return c.shallow
	}
	if c.parent == nil {
		return c.shallow
	}
	return c.increment + c.parent.sizeOf(true)
}

// rootClass is the universal base of every declared hierarchy. It is
// storage-free: its base footprint is zero and every managed instance
// answers a query for its token.
var rootClass = &Class{
	id:   newClassID(classScope, "Object"),
	name: "Object",
}

// Root returns the universal root class.
func Root() *Class { return rootClass }

// registry holds every declaration made in the process. Tokens and
// declarations are write-once; the lock only guards the registration maps.
type registry struct {
	mu         sync.Mutex
	classNames map[string]*Class
	classTypes map[reflect.Type]*Class
	ifaceNames map[string]*Interface
	ifaceTypes map[reflect.Type]*Interface
}

var reg = &registry{
	classNames: map[string]*Class{rootClass.name: rootClass},
	classTypes: map[reflect.Type]*Class{},
	ifaceNames: map[string]*Interface{},
	ifaceTypes: map[reflect.Type]*Interface{},
}

func (r *registry) addClass(c *Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classNames[c.name]; exists {
		panic(DuplicateClassError{Name: c.name})
	}
	if prev, exists := r.classTypes[c.rtype]; exists {
		panic(DuplicateClassError{Name: prev.name})
	}
	r.classNames[c.name] = c
	r.classTypes[c.rtype] = c
}

func (r *registry) addInterface(in *Interface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ifaceNames[in.name]; exists {
		panic(DuplicateInterfaceError{Name: in.name})
	}
	if prev, exists := r.ifaceTypes[in.rtype]; exists {
		panic(DuplicateInterfaceError{Name: prev.name})
	}
	r.ifaceNames[in.name] = in
	r.ifaceTypes[in.rtype] = in
}

func (r *registry) classByName(name string) (*Class, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classNames[name]
	return c, ok
}

func (r *registry) interfaceByName(name string) (*Interface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.ifaceNames[name]
	return in, ok
}

func (r *registry) interfaceByType(rt reflect.Type) (*Interface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.ifaceTypes[rt]
	return in, ok
}

// LookupClass returns the class declared under name, if any.
func LookupClass(name string) (*Class, bool) {
	return reg.classByName(name)
}
