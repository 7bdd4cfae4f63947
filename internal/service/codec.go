package service

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
	"github.com/fxamacker/cbor/v2"
)

// The wire messages are plain structs, so the built-in proto codecs cannot
// carry them. These codecs replace them under the same content types.
var (
	_ connect.Codec = JSONCodec{}
	_ connect.Codec = CBORCodec{}
)

// JSONCodec carries messages as application/json.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid json message: %w", err)
	}
	return nil
}

// CBORCodec carries messages as application/cbor.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Marshal(msg any) ([]byte, error) {
	return cbor.Marshal(msg)
}

func (CBORCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := cbor.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid cbor message: %w", err)
	}
	return nil
}

// codecOptions registers both codecs on a handler.
func codecOptions() connect.HandlerOption {
	return connect.WithHandlerOptions(
		connect.WithCodec(JSONCodec{}),
		connect.WithCodec(CBORCodec{}),
	)
}
