package codec

import (
	"io"

	"github.com/goccy/go-json"
)

// JSON implements Marshaler and Unmarshaler on top of goccy/go-json,
// which is wire-compatible with encoding/json. The portal API speaks
// JSON on every endpoint.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

func (JSON) Unmarshal(data []byte, dst any) error {
	return json.Unmarshal(data, dst)
}

func (JSON) NewDecoder(r io.Reader) Decoder {
	return json.NewDecoder(r)
}
