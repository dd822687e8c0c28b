package om

import (
	"reflect"
)

// Managed is the universal root contract every managed class satisfies.
//
// Concrete types obtain it by embedding Core; the unexported bind method
// keeps outside packages from implementing Managed directly, so every
// instance in a process went through New.
type Managed interface {
	// Class returns the class the instance was constructed under.
	Class() *Class

	// ClassID returns the instance's identity token without a full
	// capability query.
	ClassID() ClassID

	// Query answers a capability lookup: the instance typed as the matching
	// capability or ancestor, or nil when the capability is absent. A nil
	// result is a normal outcome, not a failure.
	Query(id ClassID) any

	// Clone produces a new, independent instance. The default reports
	// CloneUnsupportedError; classes opt in by overriding.
	Clone() (Managed, error)

	// SizeOf reports the shallow footprint of the concrete class, or, when
	// deep, the footprint accumulated over the whole ancestor chain.
	SizeOf(deep bool) uint64

	bind(cls *Class, self Managed)
}

// Core is the embeddable base of every managed class. The zero value is
// unbound; New binds it during construction.
//
// Core stores the instance's class and a reference to the outermost concrete
// value, so promoted methods answer for the full instance rather than for
// the embedded fragment.
type Core struct {
	class *Class
	self  Managed
}

// Class returns the class the instance was constructed under, or nil if the
// instance bypassed New.
func (c *Core) Class() *Class { return c.class }

// ClassID returns the instance's identity token.
func (c *Core) ClassID() ClassID {
	if c.class == nil {
		return ClassID{}
	}
	return c.class.id
}

// Query answers a capability lookup against the instance's class tables.
func (c *Core) Query(id ClassID) any {
	if c.class == nil || c.self == nil {
		return nil
	}
	return c.class.cast(c.self, id)
}

// Clone reports CloneUnsupportedError naming the concrete class. Classes
// that support cloning shadow this method.
func (c *Core) Clone() (Managed, error) {
	name := "Object"
	if c.class != nil {
		name = c.class.name
	}
	return nil, CloneUnsupportedError{Class: name}
}

// SizeOf answers the footprint query for the instance's class.
func (c *Core) SizeOf(deep bool) uint64 {
	if c.class == nil {
		return 0
	}
	return c.class.sizeOf(deep)
}

func (c *Core) bind(cls *Class, self Managed) {
	c.class = cls
	c.self = self
}

// New is the construction entry point for managed instances.
//
// It runs the constructor, verifies the produced value is an instance of the
// declared class, binds it, and wraps it in a Handle. Per-class exported
// constructors delegate here with their exact argument lists, so a call with
// a mismatched signature is an ordinary compile error.
//
// New panics with a typed error on programming mistakes (nil class, nil
// constructor, nil instance, wrong concrete type); none of these are
// runtime conditions a caller should branch on.
func New[T Managed](cls *Class, ctor func() T) Handle[T] {
	if cls == nil {
		panic(ErrNilClass)
	}
	if ctor == nil {
		panic(ErrNilConstructor)
	}
	obj := ctor()
	v := reflect.ValueOf(obj)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		panic(ErrNilInstance)
	}
	if v.Type() != cls.rtype {
		panic(ClassMismatchError{Class: cls.name, GotType: v.Type().String()})
	}
	obj.bind(cls, obj)
	return Handle[T]{obj: obj}
}

// As performs a typed capability query: the instance viewed as the Go
// interface I, provided I was declared via DeclareInterface and the
// instance's class (or an ancestor) declares it.
//
// ok is false when I is not a declared capability or the instance does not
// support it.
func As[I any](o Managed) (res I, ok bool) {
	if o == nil {
		return res, false
	}
	in, found := reg.interfaceByType(reflect.TypeOf((*I)(nil)).Elem())
	if !found {
		return res, false
	}
	got := o.Query(in.id)
	if got == nil {
		return res, false
	}
	res, ok = got.(I)
	return res, ok
}

// IsA reports whether the instance supports the class's token, i.e. whether
// cls is the instance's own class or one of its ancestors.
func IsA(o Managed, cls *Class) bool {
	if o == nil || cls == nil {
		return false
	}
	return o.Query(cls.id) != nil
}
