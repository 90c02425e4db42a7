package source

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/arloliu/tokenstream/emit"
)

// ValueSource drives an emitter from an arbitrary Go value using
// reflection; it stands in for a wire decoder when the document already
// lives in memory.
//
// Event mapping:
//
//	bool, intN, uintN, floatN -> the matching exact-width scalar token
//	int/uint                  -> Int64/Uint64
//	string                    -> Str
//	[]byte                    -> Bytes
//	nil pointer/interface     -> None
//	non-nil pointer           -> Some + wrapped value
//	slice                     -> Seq with exact length
//	array                     -> Tuple
//	map                       -> Map (string and integer keys are sorted
//	                             for deterministic streams)
//	struct                    -> Struct with exported fields as Str keys;
//	                             field-less structs become UnitStruct
//
// Unexported struct fields are skipped. Channels, funcs and unsafe
// pointers cannot be transcoded.
type ValueSource struct {
	v any
}

// NewValueSource creates a driver for v.
func NewValueSource(v any) *ValueSource {
	return &ValueSource{v: v}
}

// Emit walks the value, invoking e's callbacks in document order.
func (s *ValueSource) Emit(e *emit.Emitter) error {
	if s.v == nil {
		return e.None()
	}

	return s.value(e, reflect.ValueOf(s.v))
}

func (s *ValueSource) value(e *emit.Emitter, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Bool:
		return e.Bool(rv.Bool())
	case reflect.Int8:
		return e.Int8(int8(rv.Int()))
	case reflect.Int16:
		return e.Int16(int16(rv.Int()))
	case reflect.Int32:
		return e.Int32(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return e.Int64(rv.Int())
	case reflect.Uint8:
		return e.Uint8(uint8(rv.Uint()))
	case reflect.Uint16:
		return e.Uint16(uint16(rv.Uint()))
	case reflect.Uint32:
		return e.Uint32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return e.Uint64(rv.Uint())
	case reflect.Float32:
		return e.Float32(float32(rv.Float()))
	case reflect.Float64:
		return e.Float64(rv.Float())
	case reflect.String:
		return e.Str(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return e.None()
		}
		return e.Some(emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, rv.Elem())
		}))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.Bytes(rv.Bytes())
		}
		return s.seq(e, rv)
	case reflect.Array:
		return s.tuple(e, rv)
	case reflect.Map:
		return s.mapValue(e, rv)
	case reflect.Struct:
		return s.structValue(e, rv)
	default:
		return fmt.Errorf("cannot transcode Go kind %s", rv.Kind())
	}
}

func (s *ValueSource) seq(e *emit.Emitter, rv reflect.Value) error {
	sc, err := e.Seq(rv.Len())
	if err != nil {
		return err
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if err := sc.Element(emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, elem)
		})); err != nil {
			return err
		}
	}

	return sc.End()
}

func (s *ValueSource) tuple(e *emit.Emitter, rv reflect.Value) error {
	sc, err := e.Tuple(rv.Len())
	if err != nil {
		return err
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if err := sc.Element(emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, elem)
		})); err != nil {
			return err
		}
	}

	return sc.End()
}

func (s *ValueSource) mapValue(e *emit.Emitter, rv reflect.Value) error {
	sc, err := e.Map(rv.Len())
	if err != nil {
		return err
	}

	keys := rv.MapKeys()
	sortKeys(keys)

	for _, key := range keys {
		k := key
		if err := sc.Key(emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, k)
		})); err != nil {
			return err
		}
		val := rv.MapIndex(key)
		if err := sc.Value(emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, val)
		})); err != nil {
			return err
		}
	}

	return sc.End()
}

func (s *ValueSource) structValue(e *emit.Emitter, rv reflect.Value) error {
	rt := rv.Type()

	fields := make([]int, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			fields = append(fields, i)
		}
	}

	if len(fields) == 0 {
		return e.UnitStruct(rt.Name())
	}

	sc, err := e.Struct(rt.Name(), len(fields))
	if err != nil {
		return err
	}

	for _, i := range fields {
		fv := rv.Field(i)
		if err := sc.Field(rt.Field(i).Name, emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, fv)
		})); err != nil {
			return err
		}
	}

	return sc.End()
}

// sortKeys orders map keys of string or integer kind so repeated walks of
// the same map produce identical token streams.
func sortKeys(keys []reflect.Value) {
	if len(keys) < 2 {
		return
	}

	switch keys[0].Kind() {
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	}
}
