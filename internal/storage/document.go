package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is a JSON object kept as raw members so partially valid data can
// be inspected field by field before it is decoded.
type Document map[string]json.RawMessage

// Kind is the JSON type of a document member.
type Kind int

const (
	KindMissing Kind = iota
	KindNull
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// ParseDocument decodes data as a JSON object. A JSON null yields a nil
// document and no error.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return d, nil
}

// Set stores v under key after marshalling it to JSON.
func (d *Document) Set(k string, v any) error {
	if *d == nil {
		*d = Document{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal member %q: %w", k, err)
	}

	(*d)[k] = json.RawMessage(b)
	return nil
}

// Get unmarshals the member at key into out.
// Returns (found=false, nil) if not present.
func (d Document) Get(key string, out any) (bool, error) {
	if d == nil {
		return false, nil
	}

	raw, ok := d[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal member %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the member, if present.
func (d Document) Delete(key string) {
	if d == nil {
		return
	}
	delete(d, key)
}

// Kind reports the JSON type of the member at key.
func (d Document) Kind(key string) Kind {
	raw, ok := d[key]
	if !ok {
		return KindMissing
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return KindMissing
	}

	switch raw[0] {
	case 'n':
		return KindNull
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	case 't', 'f':
		return KindBool
	}
	return KindNumber
}

// Has reports whether every key is present. A null member counts as present.
func (d Document) Has(keys ...string) bool {
	for _, k := range keys {
		if d.Kind(k) == KindMissing {
			return false
		}
	}
	return true
}
