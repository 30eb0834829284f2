package core

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	cryptolab "github.com/BackendStack21/cryptolab-go"
)

// DecodeParams reads TOML from r on top of DefaultParams, so a file only
// needs the keys it changes. Unknown keys are rejected.
func DecodeParams(r io.Reader) (cryptolab.Params, error) {
	params := DefaultParams
	md, err := toml.NewDecoder(r).Decode(&params)
	if err != nil {
		return cryptolab.Params{}, fmt.Errorf("decoding config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cryptolab.Params{}, fmt.Errorf("decoding config: unknown key %q", undecoded[0].String())
	}
	if err := ValidateParams(params); err != nil {
		return cryptolab.Params{}, fmt.Errorf("invalid config: %w", err)
	}
	return params, nil
}

// LoadParams reads and validates the TOML config file at path.
func LoadParams(path string) (cryptolab.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return cryptolab.Params{}, err
	}
	defer f.Close()
	return DecodeParams(f)
}

// EncodeParams writes params as TOML.
func EncodeParams(w io.Writer, params cryptolab.Params) error {
	return toml.NewEncoder(w).Encode(params)
}
