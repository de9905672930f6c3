package decoder

import (
	"net/url"

	"github.com/gorilla/schema"
)

// QueryDecoder fills structs from url query values. Fields are matched by
// their "query" tag, unknown keys are ignored.
type QueryDecoder struct {
	decoder *schema.Decoder
}

func New() *QueryDecoder {
	d := schema.NewDecoder()
	d.SetAliasTag("query")
	d.IgnoreUnknownKeys(true)
	return &QueryDecoder{decoder: d}
}

func (d *QueryDecoder) Decode(dst any, src url.Values) error {
	return d.decoder.Decode(dst, src)
}
