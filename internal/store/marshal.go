package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/pikov/props"
)

// marshalProperties converts a property bag to canonical JSON TEXT for
// storage. Canonical serialization (RFC 8785) keeps the column byte-stable:
// the same bag always produces the same text.
func marshalProperties(bag props.Object) (string, error) {
	if len(bag) == 0 {
		return "{}", nil
	}
	data, err := props.MarshalCanonical(bag)
	if err != nil {
		return "", fmt.Errorf("marshal properties: %w", err)
	}
	return string(data), nil
}

// unmarshalProperties parses a stored properties_json column back into a
// property bag. props.Object handles large integers via json.Number, so
// values beyond 2^53 survive the round trip.
func unmarshalProperties(data string) (props.Object, error) {
	if data == "" || data == "{}" {
		return props.Object{}, nil
	}
	var bag props.Object
	if err := json.Unmarshal([]byte(data), &bag); err != nil {
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}
	return bag, nil
}
