package storage

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Record is the versioned envelope every saved value is written in.
type Record[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"state"`
}

func (r *Record[T]) Id() Identifier {
	return r.Identifier
}

func (r *Record[T]) Validate() error {
	el := errors.NewErrorList()

	if r.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if r.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(r.Identifier.String()) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	el.Add(r.Spec.Validate())

	return el.Err()
}

// Put validates r and writes it to st under its identifier.
func Put[T ValidatingSpec](st Storer, r *Record[T]) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("validating record %s: %w", r.Identifier, err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	return st.Save(r.Identifier.String(), data)
}
