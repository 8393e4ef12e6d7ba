package common

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	logging "github.com/inconshreveable/log15"
)

const logTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

// SetLoggingFor sets the handler of the given logger
func SetLoggingFor(logger logging.Logger, level logging.Lvl, handler logging.Handler) {
	logger.SetHandler(logging.LvlFilterHandler(level, handler))
}

// logValue converts v to what json.Marshal writes as one readable field.
// Nil pointers implementing fmt.Stringer or error become "nil".
func logValue(v interface{}) interface{} {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "nil"
	}

	switch t := v.(type) {
	case json.Marshaler:
		return t
	case time.Time:
		return t.Format(logTimeFormat)
	case time.Duration:
		return t.String()
	case error:
		if _, ok := t.(interface{ Serialize() ([]byte, error) }); ok {
			return t
		}
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	return v
}

// JSONFormat writes one json object per record.
func JSONFormat() logging.Format {
	return logging.FormatFunc(func(r *logging.Record) []byte {
		fields := map[string]interface{}{
			r.KeyNames.Time: r.Time.Format(logTimeFormat),
			r.KeyNames.Lvl:  r.Lvl.String(),
			r.KeyNames.Msg:  r.Msg,
		}

		for i := 0; i+1 < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if !ok {
				k = fmt.Sprintf("%v", r.Ctx[i])
			}
			fields[k] = logValue(r.Ctx[i+1])
		}
		if len(r.Ctx)%2 == 1 {
			fields["extra"] = logValue(r.Ctx[len(r.Ctx)-1])
		}

		b, err := json.Marshal(fields)
		if err != nil {
			b, _ = json.Marshal(map[string]string{
				r.KeyNames.Msg: r.Msg,
				"log_error":    err.Error(),
			})
		}

		return append(b, '\n')
	})
}
