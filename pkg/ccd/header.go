package ccd

import "fmt"

// A Header is the key/value metadata read from one raw frame, in file
// order. It is built up once by the reader and never modified after
// the frame is constructed.
//
// Values are whatever the reader produced: int, float64, bool or
// string. The typed getters do the obvious numeric widening.
type Header struct {
	keys []string
	vals map[string]interface{}
}

func NewHeader() *Header {
	return &Header{
		keys: []string{},
		vals: map[string]interface{}{},
	}
}

// Add appends a key/value pair. A repeated key overwrites the value
// but keeps the original position.
func (h *Header)Add(key string, val interface{}) {
	if _, exists := h.vals[key]; !exists {
		h.keys = append(h.keys, key)
	}
	h.vals[key] = val
}

// Keys returns the keys in the order they were added.
func (h *Header)Keys() []string {
	keys := make([]string, len(h.keys))
	copy(keys, h.keys)
	return keys
}

func (h *Header)Has(key string) bool {
	_, exists := h.vals[key]
	return exists
}

func (h *Header)Int(key string) (int, error) {
	switch v := h.vals[key].(type) {
	case int:     return v, nil
	case int64:   return int(v), nil
	case float64: return int(v), nil
	}
	return 0, fmt.Errorf("header key '%s': no integer value", key)
}

func (h *Header)Float(key string) (float64, error) {
	switch v := h.vals[key].(type) {
	case float64: return v, nil
	case int:     return float64(v), nil
	case int64:   return float64(v), nil
	}
	return 0, fmt.Errorf("header key '%s': no numeric value", key)
}

func (h *Header)Str(key string) (string, error) {
	if v, ok := h.vals[key].(string); ok {
		return v, nil
	}
	return "", fmt.Errorf("header key '%s': no string value", key)
}

// The getters below never fail; a missing or mistyped key comes back
// as the zero value, which is what the summary output wants.

func (h *Header)FloatOr(key string, dflt float64) float64 {
	if v, err := h.Float(key); err == nil { return v }
	return dflt
}

func (h *Header)StrOr(key, dflt string) string {
	if v, err := h.Str(key); err == nil { return v }
	return dflt
}
