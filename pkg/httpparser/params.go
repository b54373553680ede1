package httpparser

import "strings"

// Param is a single decoded query parameter.
type Param struct {
	Key   string
	Value string
}

// ParamMap holds one value per query parameter name in first-insertion
// order. Names are case-sensitive.
type ParamMap []Param

// Get returns the value for key. An exact match wins; otherwise the first
// case-insensitive match is returned.
func (m ParamMap) Get(key string) (string, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	for _, p := range m {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the parameter with exactly this name or appends
// a new one.
func (m *ParamMap) Set(key, value string) {
	for i, p := range *m {
		if p.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Param{Key: key, Value: value})
}

// Len returns the number of distinct parameter names.
func (m ParamMap) Len() int { return len(m) }

// Clone returns a deep copy of the parameters.
func (m ParamMap) Clone() ParamMap {
	if m == nil {
		return nil
	}
	clone := make(ParamMap, len(m))
	copy(clone, m)
	return clone
}
