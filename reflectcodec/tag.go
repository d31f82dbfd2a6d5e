// Package reflectcodec implements the reflection/annotation serializer:
// a Serializer that derives a struct's wire layout from `pof:"index,name"`
// field tags instead of requiring a hand-written Encode/Decode pair.
package reflectcodec

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pofkit/pof/errs"
)

// Attribute describes one tagged field: its wire index, its mangled
// name (for diagnostics and future non-index discovery paths), and the
// struct field it reads/writes.
type Attribute struct {
	Index int32
	Name  string
	Field reflect.StructField
}

// taggedField is parseTag's result before an auto-indexed field's final
// Index is known: hasIndex is false when the tag's first component
// wasn't a number, which is only legal under WithAutoIndex.
type taggedField struct {
	index    int32
	hasIndex bool
	name     string
	field    reflect.StructField
}

// parseTag splits a `pof:"index,name"` tag value. name is optional; when
// absent, mangleName(field.Name) is used instead. A tag whose first
// component isn't a number (e.g. `pof:"name"`) omits the index —
// discoverAttributes rejects this with errs.ErrMissingIndex unless the
// codec was built with WithAutoIndex, in which case the field's index is
// assigned later by sorted name order.
func parseTag(field reflect.StructField) (taggedField, bool, error) {
	raw, ok := field.Tag.Lookup("pof")
	if !ok || raw == "-" {
		return taggedField{}, false, nil
	}

	parts := strings.SplitN(raw, ",", 2)
	first := strings.TrimSpace(parts[0])

	name := mangleName(field.Name)
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		name = strings.TrimSpace(parts[1])
	}

	idx, err := strconv.Atoi(first)
	if err != nil {
		if len(parts) == 1 && first != "" {
			name = first
		}

		return taggedField{hasIndex: false, name: name, field: field}, true, nil
	}

	return taggedField{index: int32(idx), hasIndex: true, name: name, field: field}, true, nil
}

// mangleName normalizes a Go field name into the lower-camel attribute
// name POF annotation discovery would have derived from a getter/setter
// pair (stripping a leading Get/Set/Is, lowering the leading rune). Go's
// exported-field convention has no getter/setter distinction, so this
// exists to keep a future non-struct-tag discovery path (e.g. deriving
// names from interface methods) consistent with the tag-driven path.
func mangleName(fieldName string) string {
	name := fieldName
	for _, prefix := range []string{"Get", "Set", "Is"} {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			name = name[len(prefix):]
			break
		}
	}
	if name == "" {
		return name
	}

	return strings.ToLower(name[:1]) + name[1:]
}

// discoverAttributes walks typ's fields (typ must be a struct type, not
// a pointer) collecting every `pof`-tagged field, sorted by index. A
// duplicate index or duplicate mangled name is rejected. A tagged field
// with no explicit index is an error unless autoIndex is set, in which
// case such fields are assigned indices by sorting their names and
// numbering them in that order, filling in whatever explicit indices
// are still free.
func discoverAttributes(typ reflect.Type, autoIndex bool) ([]Attribute, error) {
	var attrs []Attribute
	var pending []taggedField

	seenIdx := make(map[int32]bool)
	seenName := make(map[string]bool)

	for i := range typ.NumField() {
		f := typ.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}

		tf, ok, err := parseTag(f)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if seenName[tf.name] {
			return nil, errs.ErrDuplicateAttribute
		}
		seenName[tf.name] = true

		if !tf.hasIndex {
			if !autoIndex {
				return nil, errs.ErrMissingIndex
			}
			pending = append(pending, tf)
			continue
		}

		if seenIdx[tf.index] {
			return nil, errs.ErrDuplicateAttribute
		}
		seenIdx[tf.index] = true

		attrs = append(attrs, Attribute{Index: tf.index, Name: tf.name, Field: tf.field})
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].name < pending[j].name })

	next := int32(0)
	for _, tf := range pending {
		for seenIdx[next] {
			next++
		}
		seenIdx[next] = true
		attrs = append(attrs, Attribute{Index: next, Name: tf.name, Field: tf.field})
		next++
	}

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Index < attrs[j].Index })

	return attrs, nil
}

// sortedNames returns attrs' mangled names in index order, the cache-key
// material rcache.NewKey hashes.
func sortedNames(attrs []Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}

	return names
}
