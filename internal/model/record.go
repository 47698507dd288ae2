package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// Document is a partial key → value mapping used to construct or update a
// record. Values must be valid UTF-8 text (string or *string), or nil
// (absent).
type Document map[string]any

// Record is the contract shared by the four research scope types. All
// methods are implemented on the pointer type.
type Record interface {
	Scope() Scope
	Fields() []FieldSpec
	Describe(key string) (string, error)
	Get(key string) (*string, error)
	Set(key string, value *string) error
	Apply(doc Document) error
	Document() Document
}

// Text returns a present attribute value.
func Text(s string) *string {
	return &s
}

// TextValue unpacks an attribute value. ok is false when the value is absent.
func TextValue(v *string) (s string, ok bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}

func copyText(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

// asText converts a document value to an attribute value.
func asText(v any) (*string, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string:
		if !utf8.ValidString(t) {
			return nil, false
		}
		return &t, true
	case *string:
		if t != nil && !utf8.ValidString(*t) {
			return nil, false
		}
		return copyText(t), true
	default:
		return nil, false
	}
}

func invalidTextDetail(v any) string {
	switch v.(type) {
	case string, *string:
		return "text is not valid UTF-8"
	}
	return fmt.Sprintf("expected text or null, got %T", v)
}

// attrSlot binds a field spec to the struct field holding its value.
type attrSlot[T any] struct {
	spec FieldSpec
	ptr  func(*T) **string
}

func attr[T any](key string, ptr func(*T) **string, description string) attrSlot[T] {
	return attrSlot[T]{spec: researchField(key, description), ptr: ptr}
}

// recordSchema is the static, per-type metadata of a research scope. It is
// built once at package init and shared by every instance.
type recordSchema[T any] struct {
	name   string
	scope  Scope
	fields []FieldSpec
	slots  []func(*T) **string
	index  map[string]int
}

func newRecordSchema[T any](name string, scope Scope, attrs ...attrSlot[T]) *recordSchema[T] {
	s := &recordSchema[T]{
		name:   name,
		scope:  scope,
		fields: make([]FieldSpec, 0, len(attrs)),
		slots:  make([]func(*T) **string, 0, len(attrs)),
		index:  make(map[string]int, len(attrs)),
	}
	for _, a := range attrs {
		if _, dup := s.index[a.spec.Key]; dup {
			panic("model: duplicate field " + a.spec.Key + " in " + name)
		}
		a.spec.Scope = scope
		s.index[a.spec.Key] = len(s.fields)
		s.fields = append(s.fields, a.spec)
		s.slots = append(s.slots, a.ptr)
	}
	return s
}

func (s *recordSchema[T]) unknown(key string) *ValidationError {
	return &ValidationError{Record: s.name, Key: key, Err: ErrUnknownField}
}

func (s *recordSchema[T]) slot(key string) (func(*T) **string, error) {
	i, ok := s.index[key]
	if !ok {
		return nil, s.unknown(key)
	}
	return s.slots[i], nil
}

func (s *recordSchema[T]) specs() []FieldSpec {
	return slices.Clone(s.fields)
}

func (s *recordSchema[T]) describe(key string) (string, error) {
	i, ok := s.index[key]
	if !ok {
		return "", s.unknown(key)
	}
	return s.fields[i].Description, nil
}

func (s *recordSchema[T]) get(r *T, key string) (*string, error) {
	p, err := s.slot(key)
	if err != nil {
		return nil, err
	}
	return copyText(*p(r)), nil
}

func (s *recordSchema[T]) set(r *T, key string, value *string) error {
	p, err := s.slot(key)
	if err != nil {
		return err
	}
	*p(r) = copyText(value)
	return nil
}

// apply validates every entry of doc before assigning any of them, so a
// rejected document leaves r untouched.
func (s *recordSchema[T]) apply(r *T, doc Document) error {
	keys := slices.Sorted(maps.Keys(doc))
	values := make([]*string, len(keys))
	for i, k := range keys {
		if _, ok := s.index[k]; !ok {
			return s.unknown(k)
		}
		v, ok := asText(doc[k])
		if !ok {
			return &ValidationError{
				Record: s.name,
				Key:    k,
				Err:    ErrInvalidType,
				Detail: invalidTextDetail(doc[k]),
			}
		}
		values[i] = v
	}
	for i, k := range keys {
		*s.slots[s.index[k]](r) = values[i]
	}
	return nil
}

// document renders every attribute, absent ones as explicit nil.
func (s *recordSchema[T]) document(r *T) Document {
	doc := make(Document, len(s.fields))
	for i, f := range s.fields {
		if v := *s.slots[i](r); v != nil {
			doc[f.Key] = *v
		} else {
			doc[f.Key] = nil
		}
	}
	return doc
}

func (s *recordSchema[T]) clone(r *T) T {
	var out T
	for _, p := range s.slots {
		*p(&out) = copyText(*p(r))
	}
	return out
}

// merge copies the present attributes of src onto dst.
func (s *recordSchema[T]) merge(dst, src *T) {
	for _, p := range s.slots {
		if v := *p(src); v != nil {
			*p(dst) = copyText(v)
		}
	}
}

func (s *recordSchema[T]) missing(r *T) []FieldSpec {
	var out []FieldSpec
	for i, p := range s.slots {
		if *p(r) == nil {
			out = append(out, s.fields[i])
		}
	}
	return out
}

func (s *recordSchema[T]) construct(doc Document) (T, error) {
	var r T
	if err := s.apply(&r, doc); err != nil {
		var zero T
		return zero, err
	}
	return r, nil
}

func (s *recordSchema[T]) unmarshalJSON(r *T, b []byte) error {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return eris.Wrapf(err, "model: decode %s", s.name)
	}
	fresh, err := s.construct(doc)
	if err != nil {
		return err
	}
	*r = fresh
	return nil
}
