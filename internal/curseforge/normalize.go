package curseforge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Shape tells how a single-entity payload was delivered.
type Shape int

const (
	// Unwrapped means the payload is the entity itself.
	Unwrapped Shape = iota
	// Wrapped means the entity sat under a "data" member.
	Wrapped
)

// String returns the shape name.
func (s Shape) String() string {
	if s == Wrapped {
		return "wrapped"
	}
	return "unwrapped"
}

// Normalized is a single-entity payload after its shape has been decided.
type Normalized struct {
	Shape  Shape
	Entity json.RawMessage
}

// Normalize decides once whether raw is an envelope.
//
// Single-entity endpoints answer either with the entity or with
// {"data": entity}. A JSON object with a "data" member and no top-level "id"
// member is treated as an envelope; anything else is taken as the entity.
// This is a heuristic: an entity without an id that owns a "data" field of
// its own is misread as an envelope.
func Normalize(raw []byte) Normalized {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil || members == nil {
		return Normalized{Shape: Unwrapped, Entity: raw}
	}

	data, hasData := members["data"]
	_, hasID := members["id"]
	if hasData && !hasID {
		return Normalized{Shape: Wrapped, Entity: data}
	}
	return Normalized{Shape: Unwrapped, Entity: raw}
}

// Absent reports whether there is no entity at all.
func (n Normalized) Absent() bool {
	trimmed := bytes.TrimSpace(n.Entity)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode decodes the entity into v. Fields of unexpected type are left at
// their zero value rather than failing the decode; only a body that is not
// JSON at all is an error.
func (n Normalized) Decode(v any) error {
	if n.Absent() {
		return nil
	}

	err := json.Unmarshal(n.Entity, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		slog.Debug("ignoring mistyped field in entity",
			"shape", n.Shape.String(),
			"field", typeErr.Field,
			"value", typeErr.Value)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// DecodeEntity normalizes raw and decodes the entity. It returns nil when
// the payload holds no entity.
func DecodeEntity[T any](raw []byte) (*T, Shape, error) {
	n := Normalize(raw)
	if n.Absent() {
		return nil, n.Shape, nil
	}

	var entity T
	if err := n.Decode(&entity); err != nil {
		return nil, n.Shape, err
	}
	return &entity, n.Shape, nil
}
