package packagetypes

import (
	"io"

	"github.com/goccy/go-json"
)

// DecodeDefinition decodes a master definition document.
func DecodeDefinition(r io.Reader) (*MasterDefinition, error) {
	d := &MasterDefinition{}
	if err := json.NewDecoder(r).Decode(d); err != nil {
		return nil, err
	}

	return d, nil
}

// DecodeMod decodes a mod install document.
func DecodeMod(r io.Reader) (*Mod, error) {
	m := &Mod{}
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, err
	}

	return m, nil
}
