// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package ptrie

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched by every error returned when an update
// addresses a key that is not stored.
var ErrKeyNotFound = errors.New("key not found")

// KeyNotFoundError reports the key an update could not reach.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}

func (e *KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}

func formatKey[K any](key []K) string {
	switch k := any(key).(type) {
	case []byte:
		return fmt.Sprintf("%q", k)
	case []rune:
		return fmt.Sprintf("%q", string(k))
	}
	return fmt.Sprint(key)
}
