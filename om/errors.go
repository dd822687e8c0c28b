package om

import (
	"errors"
	"strconv"
)

var (
	// ErrNilClass is reported when a construction entry point is given a nil
	// class.
	ErrNilClass = errors.New("om: nil class")

	// ErrNilConstructor is reported when a construction entry point is given
	// a nil constructor function.
	ErrNilConstructor = errors.New("om: nil constructor")

	// ErrNilInstance is reported when a constructor function returns a nil
	// instance.
	ErrNilInstance = errors.New("om: constructor returned nil instance")

	// ErrNilParent is reported when Extends is given a nil class.
	ErrNilParent = errors.New("om: nil parent class")

	// ErrNilInterface is reported when Implements or DeclareInterface is
	// given a nil interface declaration.
	ErrNilInterface = errors.New("om: nil interface declaration")
)

// CloneUnsupportedError is returned by the default Clone of any class that
// has not overridden it.
type CloneUnsupportedError struct{ Class string }

// Error implements the error interface.
func (e CloneUnsupportedError) Error() string {
	// Example: om: class "zoo.Animal" does not support cloning
	return "om: class " + strconv.Quote(e.Class) + " does not support cloning"
}

// DuplicateClassError is raised when a class name or its concrete Go type is
// declared more than once.
type DuplicateClassError struct{ Name string }

// Error implements the error interface.
func (e DuplicateClassError) Error() string {
	return "om: class " + strconv.Quote(e.Name) + " already declared"
}

// DuplicateInterfaceError is raised when an interface name or its Go type is
// declared more than once.
type DuplicateInterfaceError struct{ Name string }

// Error implements the error interface.
func (e DuplicateInterfaceError) Error() string {
	return "om: interface " + strconv.Quote(e.Name) + " already declared"
}

// NotInterfaceError is raised when DeclareInterface is instantiated with a
// non-interface Go type.
type NotInterfaceError struct {
	Name string

	// GotType is the reflected type that was supplied instead.
	GotType string
}

// Error implements the error interface.
func (e NotInterfaceError) Error() string {
	return "om: declaration " + strconv.Quote(e.Name) + " is not an interface type (" + e.GotType + ")"
}

// NotImplementedError is raised at declaration time when a class declares a
// capability interface its concrete Go type does not implement.
type NotImplementedError struct {
	Class     string
	Interface string
}

// Error implements the error interface.
func (e NotImplementedError) Error() string {
	return "om: class " + strconv.Quote(e.Class) + " does not implement declared interface " + strconv.Quote(e.Interface)
}

// ClassMismatchError is raised when a constructor passed to New produces an
// instance of a different concrete type than the class was declared with.
type ClassMismatchError struct {
	Class string

	// GotType is reflect.TypeOf(instance).String() for the produced value.
	GotType string
}

// Error implements the error interface.
func (e ClassMismatchError) Error() string {
	return "om: constructor for class " + strconv.Quote(e.Class) + " produced wrong type (" + e.GotType + ")"
}
