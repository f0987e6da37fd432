package model

import (
	"bytes"
	"encoding/json"
)

// Synthetic record keys set by the scanner itself rather than parsed from
// the profile header.
const (
	KeyDirectory = "HMMDirectory" // directory containing the profile file
	KeyFile      = "HMMfile"      // profile file name within that directory
	KeyVersion   = "HMMER"        // format version token from the first line
	KeySource    = "SOURCE"       // provenance label inferred from ACC
)

// Record holds the annotation metadata extracted from a single HMM profile
// file. Insertion order is preserved: it is visible in the tabular output
// and in the JSON object's key order.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores value under key, appending the key to the order on first
// insertion. Setting an existing key updates the value in place.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it was present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetDefault returns the value for key, or def if absent.
func (r *Record) GetDefault(key, def string) string {
	if v, ok := r.values[key]; ok {
		return v
	}
	return def
}

// Len returns the number of entries.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the values in key insertion order.
func (r *Record) Values() []string {
	out := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.values[k])
	}
	return out
}

// MarshalJSON serializes the record as a single JSON object with keys in
// insertion order. encoding/json's map handling would sort keys, so the
// object is assembled field by field.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
