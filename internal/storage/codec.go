package storage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

type (
	EncodeFn func(v any) ([]byte, error)
	DecodeFn func(data []byte, v any) error
)

// Canonical CBOR so equal values always produce equal bytes.
var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor enc mode: %v", err))
	}
	return em
}()

// Encode is the default value encoder used by the stores.
func Encode(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Decode is the default value decoder used by the stores.
func Decode(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
