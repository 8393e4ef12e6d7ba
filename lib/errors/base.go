package errors

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
)

type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty" rlp:"-"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) Clone() *Error {
	var n Error
	n = *o

	n.Data = map[string]interface{}{}
	for k, v := range o.Data {
		n.Data[k] = v
	}

	return &n
}

// With returns a copy of the error carrying one more data entry, leaving the
// predefined error untouched.
func (o *Error) With(k string, v interface{}) *Error {
	return o.Clone().SetData(k, v)
}

func (o *Error) EncodeRLP(w io.Writer) (err error) {
	if o == nil {
		return rlp.Encode(w, []uint{})
	}

	if len(o.Data) > 0 {
		var keys []string
		for k := range o.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var d [][2]interface{}
		for _, k := range keys {
			d = append(d, [2]interface{}{k, o.Data[k]})
		}
		if err = rlp.Encode(w, d); err != nil {
			return
		}
	}

	return rlp.Encode(w, struct {
		Code    uint
		Message string
	}{
		Code:    o.Code,
		Message: o.Message,
	})
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

// Is reports whether err carries the same code as target; cloned errors with
// extra data still match the predefined one.
func Is(err error, target *Error) bool {
	e, ok := err.(*Error)
	if !ok || e == nil || target == nil {
		return false
	}

	return e.Code == target.Code
}

func code(err error) (uint, bool) {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return 0, false
	}
	return e.Code, true
}

// IsValidation reports whether err was raised by argument or balance
// validation.
func IsValidation(err error) bool {
	c, ok := code(err)
	return ok && c >= 100 && c < 150
}

// IsState reports whether err was raised because the call does not fit the
// current voting cycle or ledger state.
func IsState(err error) bool {
	c, ok := code(err)
	return ok && c >= 150 && c < 170
}
