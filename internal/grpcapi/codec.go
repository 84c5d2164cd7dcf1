package grpcapi

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodecName is the content-subtype clients select with
// grpc.CallContentSubtype, i.e. "application/grpc+json".
const jsonCodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec lets the service use plain Go structs as messages.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }
