package foodtruck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotScalar is returned when a mapped field holds an object or an array.
var ErrNotScalar = errors.New("expected a JSON scalar")

// Truck is a single food truck schedule entry as published by the upstream
// open-data API. All fields are optional; absent keys decode to "".
type Truck struct {
	Name      string `json:"applicant,omitempty"    yaml:"name,omitempty"`
	OpenDay   string `json:"dayofweekstr,omitempty" yaml:"open_day,omitempty"`
	OpenTime  string `json:"start24,omitempty"      yaml:"open_time,omitempty"`
	CloseTime string `json:"end24,omitempty"        yaml:"close_time,omitempty"`
	Address   string `json:"location,omitempty"     yaml:"address,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. Mapped fields accept any JSON
// scalar: numbers and booleans keep their literal text and null decodes to "".
// Unknown keys are ignored.
func (t *Truck) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      scalarString `json:"applicant"`
		OpenDay   scalarString `json:"dayofweekstr"`
		OpenTime  scalarString `json:"start24"`
		CloseTime scalarString `json:"end24"`
		Address   scalarString `json:"location"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Truck{
		Name:      string(raw.Name),
		OpenDay:   string(raw.OpenDay),
		OpenTime:  string(raw.OpenTime),
		CloseTime: string(raw.CloseTime),
		Address:   string(raw.Address),
	}
	return nil
}

// scalarString decodes any JSON scalar into its text.
type scalarString string

func (s *scalarString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = scalarString(x)
	case json.Number:
		*s = scalarString(x.String())
	case bool:
		*s = scalarString(strconv.FormatBool(x))
	default:
		return fmt.Errorf("%w, got %s", ErrNotScalar, bytes.TrimSpace(data))
	}
	return nil
}
