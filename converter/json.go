package converter

import (
	"encoding/json"
)

type jsonConverter struct{}

func (jc *jsonConverter) To(v any) (Payload, error) {
	return json.Marshal(v)
}

func (jc *jsonConverter) From(data Payload, vptr any) error {
	return json.Unmarshal(data, vptr)
}
