// Package api defines the Connect RPC surface of the server: procedure
// names, wire messages, handler constructors and typed clients.
//
// Messages are plain Go structs carried as JSON; every handler and client
// built here is configured with JSONCodec.
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// JSONCodec encodes messages with encoding/json. It registers under the
// name "json", so requests use the application/json content type.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return b, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg at its zero
// value.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}
