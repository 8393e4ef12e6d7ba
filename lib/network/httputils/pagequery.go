package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ModernExodus/tontoken/lib/errors"
)

const DefaultMaxLimit uint64 = 100

// PageQuery reads `cursor`, `reverse` and `limit` of a list request. The
// cursor is the key of the last record of the previous page.
type PageQuery struct {
	request *http.Request
	cursor  string
	reverse bool
	limit   uint64
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		limit:   DefaultMaxLimit,
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) Cursor() string {
	return p.cursor
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(cursor string) string {
	return p.link(cursor, !p.reverse)
}

func (p *PageQuery) NextLink(cursor string) string {
	return p.link(cursor, p.reverse)
}

func (p *PageQuery) link(cursor string, reverse bool) string {
	return fmt.Sprintf("%s?%s", p.request.URL.Path, p.urlValues(cursor, reverse).Encode())
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	if r := q.Get("reverse"); r != "" {
		reverse, err := strconv.ParseBool(r)
		if err != nil {
			return errors.InvalidParameter.With("reverse", r)
		}
		p.reverse = reverse
	}

	p.cursor = q.Get("cursor")

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 {
			return errors.InvalidParameter.With("limit", l)
		}
		if limit < DefaultMaxLimit {
			p.limit = limit
		}
	}
	return nil
}

func (p PageQuery) urlValues(cursor string, reverse bool) url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(reverse)},
	}

	if len(cursor) > 0 {
		v.Set("cursor", cursor)
	}
	v.Set("limit", strconv.FormatUint(p.limit, 10))

	return v
}
