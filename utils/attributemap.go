// Package utils provides small shared helpers used across tip, starting
// with AttributeMap, a loosely typed config bag modeled on the teacher's
// config.AttributeMap.
package utils

import "fmt"

// AttributeMap is a string-keyed bag of arbitrary values, typically decoded
// from YAML/JSON config. Its typed accessors panic on a type mismatch so
// that a misconfigured field fails loudly at startup rather than silently
// zero-valuing a control parameter.
type AttributeMap map[string]interface{}

// Float64 returns the float64 value at key, or def if key is absent.
func (am AttributeMap) Float64(key string, def float64) float64 {
	v, ok := am[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	default:
		panic(fmt.Sprintf("attribute %q: wanted a float64, got %T", key, v))
	}
}

// Int returns the int value at key, or def if key is absent.
func (am AttributeMap) Int(key string, def int) int {
	v, ok := am[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	default:
		panic(fmt.Sprintf("attribute %q: wanted an int, got %T", key, v))
	}
}

// Bool returns the bool value at key, or def if key is absent.
func (am AttributeMap) Bool(key string, def bool) bool {
	v, ok := am[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		panic(fmt.Sprintf("attribute %q: wanted a bool, got %T", key, v))
	}
	return b
}

// String returns the string value at key, or def if key is absent.
func (am AttributeMap) String(key string, def string) string {
	v, ok := am[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		panic(fmt.Sprintf("attribute %q: wanted a string, got %T", key, v))
	}
	return s
}

// Float64Slice returns the []float64 value at key, or def if key is absent.
// Values decoded from YAML/JSON frequently arrive as []interface{}; each
// element is coerced the same way Float64 coerces a scalar.
func (am AttributeMap) Float64Slice(key string, def []float64) []float64 {
	v, ok := am[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case []float64:
		return t
	case []interface{}:
		out := make([]float64, len(t))
		for i, e := range t {
			switch n := e.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			default:
				panic(fmt.Sprintf("attribute %q: values in %v need to be floats", key, t))
			}
		}
		return out
	default:
		panic(fmt.Sprintf("attribute %q: wanted a []float64, got %T", key, v))
	}
}

// IntSlice returns the []int value at key, or def if key is absent.
func (am AttributeMap) IntSlice(key string, def []int) []int {
	v, ok := am[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case []int:
		return t
	case []interface{}:
		out := make([]int, len(t))
		for i, e := range t {
			n, ok := e.(int)
			if !ok {
				if f, ok := e.(float64); ok {
					out[i] = int(f)
					continue
				}
				panic(fmt.Sprintf("attribute %q: values in %v need to be ints", key, t))
			}
			out[i] = n
		}
		return out
	default:
		panic(fmt.Sprintf("attribute %q: wanted a []int, got %T", key, v))
	}
}

// StringSlice returns the []string value at key, or def if key is absent.
func (am AttributeMap) StringSlice(key string, def []string) []string {
	v, ok := am[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				panic(fmt.Sprintf("attribute %q: values in %v need to be strings", key, t))
			}
			out[i] = s
		}
		return out
	default:
		panic(fmt.Sprintf("attribute %q: wanted a []string, got %T", key, v))
	}
}

// Has reports whether key is present in the map.
func (am AttributeMap) Has(key string) bool {
	_, ok := am[key]
	return ok
}
