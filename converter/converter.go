package converter

// Payload is the serialized representation of a value. It is the only
// representation allowed to cross the worker isolation boundary.
type Payload []byte

type Converter interface {
	// To converts the given value to a payload
	To(v any) (Payload, error)

	// From converts the given payload to a value
	From(data Payload, vptr any) error
}

var DefaultConverter Converter = &jsonConverter{}
