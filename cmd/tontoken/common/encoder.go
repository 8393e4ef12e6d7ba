package common

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"
)

type Encode func(v interface{}, w io.Writer) error

var DefaultEncodes = map[string]Encode{
	"json": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, false)
	},
	"prettyjson": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, true)
	},
	"yaml": func(v interface{}, w io.Writer) error {
		// yaml has no knowledge of json marshalers, like `common.Amount`.
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var o interface{}
		if err := yaml.Unmarshal(b, &o); err != nil {
			return err
		}

		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(o)
	},
}

func jsonEncode(v interface{}, w io.Writer, pretty bool) error {
	e := json.NewEncoder(w)
	if pretty {
		e.SetIndent("", "  ")
	}

	return e.Encode(&v)
}
