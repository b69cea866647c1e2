package types

import (
	"errors"
	"fmt"

	shared "github.com/GriffinCanCode/appwrite-go/internal/shared/types"
)

// ErrMissingField is returned when a response lacks a required key
var ErrMissingField = errors.New("missing field")

func requireKeys(model string, obj shared.Object, keys ...string) error {
	for _, key := range keys {
		if _, ok := obj.Get(key); !ok {
			return fmt.Errorf("%s: %w %q", model, ErrMissingField, key)
		}
	}
	return nil
}

func optionalString(obj shared.Object, key string) *string {
	v, ok := obj.Get(key)
	if !ok || v.IsNull() {
		return nil
	}
	s := v.Text()
	return &s
}

func objects(model string, obj shared.Object, key string) ([]shared.Object, error) {
	items := obj.Array(key)
	out := make([]shared.Object, 0, len(items))
	for i, item := range items {
		o, ok := item.AsObject()
		if !ok {
			return nil, fmt.Errorf("%s: %s[%d] is %s, not an object", model, key, i, item.Kind())
		}
		out = append(out, o)
	}
	return out, nil
}
