package inventoryservice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// rawResponse is the decoding target for query output that is either a bare
// object (exactly one hardware unit) or an array (any other count).
// It never escapes this package: callers get a plain slice from List.
type rawResponse[T any] struct {
	single *T
	many   []T
}

func (r *rawResponse[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0:
		return errors.New("empty document")
	case bytes.Equal(data, []byte("null")):
		r.many = []T{}
		return nil
	case data[0] == '[':
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return fmt.Errorf("array shape: %w", err)
		}
		r.many = many
		return nil
	case data[0] == '{':
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return fmt.Errorf("object shape: %w", err)
		}
		r.single = &one
		return nil
	default:
		return fmt.Errorf("expected JSON object or array, got %q", data[0])
	}
}

// List collapses either shape into a slice; a single object becomes a
// slice of length one.
func (r rawResponse[T]) List() []T {
	if r.single != nil {
		return []T{*r.single}
	}
	if r.many == nil {
		return []T{}
	}
	return r.many
}

// decodeList decodes raw query output into a normalized list. Output that is
// blank after trimming means the query matched no hardware and yields an
// empty list.
func decodeList[T any](source, raw string) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}

	var resp rawResponse[T]
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &DecodeError{Source: source, Raw: raw, Err: err}
	}

	return resp.List(), nil
}
