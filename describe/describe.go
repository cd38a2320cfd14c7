// Package describe builds meta.Descriptor trees for Go types.
//
// The builder reads a type's declared shape through reflection: struct
// fields and their `describe`, `meta` and `json` tags, the container marker
// embedded in the struct, and the declarations registered for the type
// (doc comments and enums, usually emitted by describe-gen). Member types
// are described recursively, then the finished tree is propagated once.
//
// Usage:
//
//	type Account struct {
//		describe.Container `describe:"rename_all=snake_case" meta:"index=true"`
//
//		OwnerName string   `meta:"index=false"`
//		Tags      []string `describe:"alias=labels,default"`
//	}
//
//	d, err := describe.Of[meta.Map, Account]()
package describe

import (
	"reflect"

	"go.uber.org/zap"

	"struct-metadata/meta"
)

// Container is a zero-size marker embedded in a struct to carry the
// container-level annotations in its tags:
//
//	describe.Container `describe:"rename=NAME,rename_all=POLICY,default" meta:"key=value"`
//
// The marker never produces an entry.
type Container struct{}

// Described is implemented by types that supply their own descriptor for
// metadata type M. describe-gen emits implementations; hand-written ones
// are honoured the same way.
//
// DescribeMetadata takes no options: the returned tree comes from its own
// declarations, so a builder's WithRegistry and WithLogger do not reach
// inside it. The tree is returned unpropagated and the calling builder
// propagates it in its single pass, with the builder's propagation mode.
type Described[M any] interface {
	DescribeMetadata() (meta.Descriptor[M], error)
}

// Option configures a Builder.
type Option func(*options)

type options struct {
	registry *Registry
	mode     meta.PropagationMode
	logger   *zap.Logger
}

// WithRegistry makes the builder read declarations from r instead of the
// default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithPropagation selects the propagation contract.
func WithPropagation(mode meta.PropagationMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithLogger sets the logger used for debug traces of the build.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Builder builds descriptors with metadata type M. A Builder holds no
// per-call state and may be shared between goroutines.
type Builder[M any] struct {
	registry *Registry
	mode     meta.PropagationMode
	logger   *zap.Logger
}

// New creates a Builder.
func New[M any](opts ...Option) *Builder[M] {
	o := options{
		registry: defaultRegistry,
		mode:     meta.Bidirectional,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return &Builder[M]{
		registry: o.registry,
		mode:     o.mode,
		logger:   o.logger,
	}
}

// Describe returns the finished, propagated descriptor tree of t.
func (b *Builder[M]) Describe(t reflect.Type) (*meta.Descriptor[M], error) {
	d, err := b.build(t)
	if err != nil {
		return nil, err
	}

	d.PropagateWith(nil, b.mode)

	b.logger.Debug("described type",
		zap.Stringer("type", t),
		zap.Stringer("kind", d.Kind.Tag),
		zap.Stringer("propagation", b.mode))

	return &d, nil
}

// Reflect returns the unpropagated descriptor of t built from its declared
// shape, without consulting a Described implementation on t itself.
func (b *Builder[M]) Reflect(t reflect.Type) (meta.Descriptor[M], error) {
	return b.shape(t)
}

// Of describes T with metadata type M.
func Of[M, T any](opts ...Option) (*meta.Descriptor[M], error) {
	return New[M](opts...).Describe(reflect.TypeFor[T]())
}

// MustOf is like Of but panics on a rejected declaration.
func MustOf[M, T any](opts ...Option) *meta.Descriptor[M] {
	d, err := Of[M, T](opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// TypeOf describes t with metadata type M.
func TypeOf[M any](t reflect.Type, opts ...Option) (*meta.Descriptor[M], error) {
	return New[M](opts...).Describe(t)
}

// Reflect builds the unpropagated descriptor of t with the default
// registry and no logger. Generated DescribeMetadata methods delegate to it,
// which is why declarations registered elsewhere are invisible to them.
// Propagation is left to the builder that reached t.
func Reflect[M any](t reflect.Type) (meta.Descriptor[M], error) {
	return New[M]().Reflect(t)
}
