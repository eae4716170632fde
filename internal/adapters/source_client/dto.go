package source_client

import "encoding/json"

// listEnvelope - the wrapped form of the list payload. A bare array is
// accepted too.
type listEnvelope struct {
	Data   []json.RawMessage `json:"data"`
	Result []json.RawMessage `json:"result"`
}
