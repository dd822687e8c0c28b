package om

import (
	"reflect"
)

// Handle is a mutable, typed reference to a managed instance. It is the
// wrapper New returns and the form references are normally passed around in.
//
// A Handle converts to a View or a Holder; nothing converts a View back to
// a Handle, so read-only references stay read-only by construction rather
// than by runtime checks.
type Handle[T Managed] struct{ obj T }

// Get returns the referenced instance for mutation and direct use.
func (h Handle[T]) Get() T { return h.obj }

// IsNil reports whether the handle references no instance.
func (h Handle[T]) IsNil() bool { return refIsNil(h.obj) }

// View narrows the reference to its read-only form. Always safe; the only
// thing lost is mutation.
func (h Handle[T]) View() View[T] { return View[T]{obj: h.obj} }

// Holder wraps the reference in its call-site-flexible form, keeping
// mutability.
func (h Handle[T]) Holder() Holder[T] { return Holder[T]{obj: h.obj} }

// View is a read-only, typed reference to a managed instance. It exposes
// the query surface of the managed contract but never hands the instance
// out for mutation.
type View[T Managed] struct{ obj T }

// Class returns the referenced instance's class.
func (v View[T]) Class() *Class {
	if v.IsNil() {
		return nil
	}
	return v.obj.Class()
}

// ClassID returns the referenced instance's identity token.
func (v View[T]) ClassID() ClassID {
	if v.IsNil() {
		return ClassID{}
	}
	return v.obj.ClassID()
}

// Query answers a capability lookup on the referenced instance.
func (v View[T]) Query(id ClassID) any {
	if v.IsNil() {
		return nil
	}
	return v.obj.Query(id)
}

// Clone produces an independent copy of the referenced instance, subject to
// the class's clone support.
func (v View[T]) Clone() (Managed, error) {
	if v.IsNil() {
		return nil, ErrNilInstance
	}
	return v.obj.Clone()
}

// SizeOf answers the footprint query on the referenced instance.
func (v View[T]) SizeOf(deep bool) uint64 {
	if v.IsNil() {
		return 0
	}
	return v.obj.SizeOf(deep)
}

// IsNil reports whether the view references no instance.
func (v View[T]) IsNil() bool { return refIsNil(v.obj) }

// Holder wraps the reference in its call-site-flexible form, marked
// read-only.
func (v View[T]) Holder() Holder[T] { return Holder[T]{obj: v.obj, readonly: true} }

// Holder is a reference whose mutability is decided by what it was built
// from: a Handle yields a mutable holder, a View a read-only one. It is the
// form to accept where callers may reasonably supply either.
type Holder[T Managed] struct {
	obj      T
	readonly bool
}

// ReadOnly reports whether the holder was built from a View.
func (d Holder[T]) ReadOnly() bool { return d.readonly }

// IsNil reports whether the holder references no instance.
func (d Holder[T]) IsNil() bool { return refIsNil(d.obj) }

// View returns the read-only form of the reference. Always available.
func (d Holder[T]) View() View[T] { return View[T]{obj: d.obj} }

// Handle returns the mutable form of the reference. ok is false when the
// holder was built from a View; callers must not treat that as a fault,
// only as "mutation unavailable here".
func (d Holder[T]) Handle() (Handle[T], bool) {
	if d.readonly {
		return Handle[T]{}, false
	}
	return Handle[T]{obj: d.obj}, true
}

// HandleOf re-wraps an already constructed instance, typically inside a
// Clone override after copy-construction through New.
func HandleOf[T Managed](o T) Handle[T] { return Handle[T]{obj: o} }

// AsHandle narrows a Managed value (for example a Clone result) back to a
// typed handle. ok is false when the value is not an instance of T.
func AsHandle[T Managed](o Managed) (Handle[T], bool) {
	t, ok := o.(T)
	if !ok || refIsNil(t) {
		return Handle[T]{}, false
	}
	return Handle[T]{obj: t}, true
}

// refIsNil treats both the zero wrapper and a typed nil pointer as empty.
func refIsNil[T Managed](o T) bool {
	v := reflect.ValueOf(o)
	return !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil())
}
