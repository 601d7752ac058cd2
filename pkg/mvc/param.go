package mvc

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// ParamError reports a query parameter that is missing or does not parse as
// the action argument's type.
type ParamError struct {
	Name string
	Type string
	Err  error
}

func (e *ParamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing query parameter %q", e.Name)
	}
	return fmt.Sprintf("query parameter %q is not a valid %s: %v", e.Name, e.Type, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

var textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Param binds the query parameter name to a value of type T.
//
// Scalars (strings, booleans, integers, floats and encoding.TextUnmarshaler
// implementations) take the first value; slices take every value. A missing
// parameter is an error unless T is a slice, which then stays empty.
func Param[T any](r *Request, name string) (T, error) {
	var zero T
	values := r.Query()[name]

	target := reflect.ValueOf(&zero).Elem()
	if target.Kind() == reflect.Slice && !implementsText(target.Type()) {
		out := reflect.MakeSlice(target.Type(), len(values), len(values))
		for i, raw := range values {
			if err := setValue(out.Index(i), raw); err != nil {
				return zero, &ParamError{Name: name, Type: target.Type().String(), Err: err}
			}
		}
		target.Set(out)
		return zero, nil
	}

	if len(values) == 0 {
		return zero, &ParamError{Name: name, Type: target.Type().String()}
	}
	if err := setValue(target, values[0]); err != nil {
		return zero, &ParamError{Name: name, Type: target.Type().String(), Err: err}
	}
	return zero, nil
}

func implementsText(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshaler)
}

func setValue(v reflect.Value, raw string) error {
	if implementsText(v.Type()) {
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		if err := setValue(elem.Elem(), raw); err != nil {
			return err
		}
		v.Set(elem)
	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}
