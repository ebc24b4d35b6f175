package codec

import (
	"bytes"
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeCBOR = "application/cbor"
)

// decMode decodes CBOR into the same shapes JSON decoding produces:
// map[string]any for maps and float64 for every number.
var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// DecodeBody decodes a response body by content type. Anything that is not
// CBOR is treated as JSON.
func DecodeBody(contentType string, body []byte) (any, error) {
	if mediaType(contentType) == ContentTypeCBOR {
		return DecodeCBOR(body)
	}
	return DecodeJSON(body)
}

func DecodeJSON(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decoding JSON body: %w", err)
	}
	return v, nil
}

// DecodeJSONObject decodes a JSON object and rejects any other JSON value.
func DecodeJSONObject(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding JSON object: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("decoding JSON object: got null")
	}
	return m, nil
}

func DecodeCBOR(body []byte) (any, error) {
	var v any
	if err := decMode.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decoding CBOR body: %w", err)
	}
	return normalize(v), nil
}

// EncodeJSON encodes v without HTML escaping.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeCBOR is used by tests and servers that answer in CBOR.
func EncodeCBOR(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

// Stringify renders v as JSON for error messages. Values JSON cannot
// represent fall back to their fmt form.
func Stringify(v any) string {
	data, err := EncodeJSON(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// normalize turns CBOR integers into float64 so decoded bodies compare the
// same way regardless of wire format.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	case uint64:
		return float64(t)
	case int64:
		return float64(t)
	}
	return v
}
