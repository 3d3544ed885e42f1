// Package investigator answers structural questions about a loaded object
// and invokes its members by name.
//
// An Investigator holds one target at a time and has no internal locking:
// use one Investigator per goroutine.
package investigator

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/meta"
)

// target is the loaded class/instance pair. It is always replaced as a whole.
type target struct {
	class    *meta.Class
	instance *meta.Object
}

type Investigator struct {
	target target
	logger *log.Logger
}

type Option func(*Investigator)

// WithLogger routes resolution and invocation failures to logger at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(inv *Investigator) {
		if logger != nil {
			inv.logger = logger
		}
	}
}

func New(opts ...Option) *Investigator {
	inv := &Investigator{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Load makes obj the investigated target, replacing any previous one.
// Loading nil clears the target.
func (inv *Investigator) Load(obj *meta.Object) {
	if obj == nil {
		inv.target = target{}
		inv.logger.Debug("target cleared")
		return
	}
	inv.target = target{class: obj.Class(), instance: obj}
	inv.logger.Debug("target loaded", "class", obj.Class().Name())
}

func (inv *Investigator) Loaded() bool {
	return inv.target.instance != nil
}

// Class returns the loaded type, nil before Load.
func (inv *Investigator) Class() *meta.Class {
	return inv.target.class
}

// Instance returns the loaded object, nil before Load.
func (inv *Investigator) Instance() *meta.Object {
	return inv.target.instance
}

// Probe returns an Investigator loaded with an instance of c. With nil
// ctorArgs the instance is a fresh object holding field initialisers; with
// non-nil ctorArgs it is built through the public constructor of that arity.
func Probe(c *meta.Class, ctorArgs []meta.Value, opts ...Option) (*Investigator, error) {
	inv := New(opts...)
	inv.Load(meta.NewObject(c))
	if ctorArgs == nil {
		return inv, nil
	}

	obj, err := inv.CreateInstance(len(ctorArgs), ctorArgs...)
	if err != nil {
		return nil, err
	}
	inv.Load(obj)
	return inv, nil
}
