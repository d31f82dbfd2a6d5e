// Package registry maps Go types to POF user-type ids and the
// Serializer each id decodes through. A Context is the Resolver that
// pofio.Writer/pofio.Reader dispatch to for every value that is not one
// of the built-in primitive families.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/options"
	"github.com/pofkit/pof/pofio"
)

// Entry is one registered type mapping: a user-type id bound to a
// native Go type and the Serializer that encodes/decodes it.
type Entry struct {
	ID         format.TypeID
	NativeType reflect.Type
	Serializer pofio.Serializer
}

// Context is the central type registry. It is safe for concurrent use;
// registration takes the write lock, lookups take the read lock.
type Context struct {
	mu sync.RWMutex

	typeToID map[reflect.Type]int32
	idToEntry map[int32]Entry

	// AllowInterfaces lets Register bind an interface type; UserTypeID
	// then resolves a concrete value by walking registered interfaces
	// it implements when no exact-type entry exists.
	AllowInterfaces bool

	// AllowSubclasses lets UserTypeID resolve a value whose concrete
	// type embeds a registered type, by walking embedded fields.
	AllowSubclasses bool

	// EnableReferences turns on identity/reference tracking for the
	// Writer that pof.Marshal builds over this Context. A Writer built
	// directly with pofio.NewWriter tracks references only when given
	// pofio.WithReferences.
	EnableReferences bool

	// DefaultSerializer, if set, is what Serializer returns for a
	// user-type id with no explicit registration. UserTypeID does not
	// fall back to it, so a native type with no registration still fails
	// to resolve with errs.ErrNotRegistered.
	DefaultSerializer pofio.Serializer
}

// Option configures a Context at construction time.
type Option = options.Option[*Context]

// WithAllowInterfaces turns on interface-based resolution.
func WithAllowInterfaces() Option {
	return options.NoError(func(c *Context) { c.AllowInterfaces = true })
}

// WithAllowSubclasses turns on embedded-type resolution.
func WithAllowSubclasses() Option {
	return options.NoError(func(c *Context) { c.AllowSubclasses = true })
}

// WithReferences turns on identity/reference tracking.
func WithReferences() Option {
	return options.NoError(func(c *Context) { c.EnableReferences = true })
}

// WithDefaultSerializer sets the fallback serializer for unregistered types.
func WithDefaultSerializer(ser pofio.Serializer) Option {
	return options.NoError(func(c *Context) { c.DefaultSerializer = ser })
}

// New creates an empty Context.
func New(opts ...Option) *Context {
	c := &Context{
		typeToID:  make(map[reflect.Type]int32),
		idToEntry: make(map[int32]Entry),
	}
	_ = options.Apply(c, opts...)

	return c
}

// Register binds id to native type's reflect.Type, encoded/decoded by
// ser. Registering the same id twice, or the same native type under two
// different ids, is rejected.
func (c *Context) Register(id format.TypeID, native any, ser pofio.Serializer) error {
	if !id.IsUserType() {
		return fmt.Errorf("%w: %s is not a user-type id", errs.ErrUnsupportedType, id)
	}

	typ := reflect.TypeOf(native)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.idToEntry[int32(id)]; ok {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateTypeID, id)
	}
	if _, ok := c.typeToID[typ]; ok {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateNativeType, typ)
	}

	c.typeToID[typ] = int32(id)
	c.idToEntry[int32(id)] = Entry{ID: id, NativeType: typ, Serializer: ser}

	return nil
}

// UserTypeID returns the user-type id registered for v's concrete type,
// falling back to interface/subclass resolution when those policies are
// enabled.
func (c *Context) UserTypeID(v any) (format.TypeID, error) {
	typ := reflect.TypeOf(v)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if id, ok := c.typeToID[typ]; ok {
		return format.TypeID(id), nil
	}

	if c.AllowSubclasses {
		if id, ok := c.resolveEmbedded(typ); ok {
			return format.TypeID(id), nil
		}
	}

	if c.AllowInterfaces {
		if id, ok := c.resolveInterface(typ); ok {
			return format.TypeID(id), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", errs.ErrNotRegistered, typ)
}

func (c *Context) resolveEmbedded(typ reflect.Type) (int32, bool) {
	t := typ
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return 0, false
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if id, ok := c.typeToID[f.Type]; ok {
			return id, true
		}
		if id, ok := c.resolveEmbedded(f.Type); ok {
			return id, true
		}
	}

	return 0, false
}

func (c *Context) resolveInterface(typ reflect.Type) (int32, bool) {
	for regType, id := range c.typeToID {
		if regType.Kind() == reflect.Interface && typ.Implements(regType) {
			return id, true
		}
	}

	return 0, false
}

// Serializer returns the Serializer registered for id.
func (c *Context) Serializer(id format.TypeID) (pofio.Serializer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.idToEntry[int32(id)]
	if ok {
		return e.Serializer, nil
	}
	if c.DefaultSerializer != nil {
		return c.DefaultSerializer, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrNotRegistered, id)
}

// NativeType returns the Go type registered for id.
func (c *Context) NativeType(id format.TypeID) (reflect.Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.idToEntry[int32(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotRegistered, id)
	}

	return e.NativeType, nil
}

// IsUserType reports whether v's type (directly, or via the enabled
// subclass/interface policies) resolves to a registered user-type id.
func (c *Context) IsUserType(v any) bool {
	_, err := c.UserTypeID(v)
	return err == nil
}
