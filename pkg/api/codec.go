package api

import "encoding/json"

// JSONCodec is a connect.Codec for the plain Go messages in this package.
// It is registered under the name "json", so requests use the standard
// application/json content type of the Connect protocol.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
