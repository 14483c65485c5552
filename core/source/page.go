package source

import (
	"net/url"
	"strconv"
)

// Query holds the filters of a collection request, e.g. {"typeId": "15"}.
type Query map[string]string

// Encode returns the filters in a stable, sorted form.
func (q Query) Encode() string {
	return q.values().Encode()
}

func (q Query) values() url.Values {
	v := url.Values{}
	for k, val := range q {
		v.Set(k, val)
	}
	return v
}

// PageRequest selects one page. Limit 0 asks for the configured page size.
type PageRequest struct {
	Skip  int
	Limit int
}

// Page is one page of a collection as returned by the API.
type Page struct {
	Total int         `json:"total"`
	Limit int         `json:"limit"`
	Skip  int         `json:"skip"`
	Data  []RawRecord `json:"data"`
}

// FetchOptions tunes a single call.
type FetchOptions struct {
	// SkipCache ignores cached entries. The fresh response is still cached.
	SkipCache bool
	// MaxPages stops FetchAll after that many pages when positive.
	MaxPages int
}

// nextSkip computes where the following page starts from what the API
// actually returned.
func (p *Page) nextSkip() int {
	step := p.Limit
	if step <= 0 {
		step = len(p.Data)
	}
	return p.Skip + step
}

// done reports whether no further page exists after p.
func (p *Page) done() bool {
	if len(p.Data) == 0 {
		return true
	}
	if p.nextSkip() >= p.Total {
		return true
	}
	return p.Limit > 0 && len(p.Data) < p.Limit
}

func pageKey(resourceType string, q Query, lang string, req PageRequest) string {
	return resourceType + "?" + q.Encode() + "&lang=" + lang +
		"&$skip=" + strconv.Itoa(req.Skip) + "&$limit=" + strconv.Itoa(req.Limit)
}

func recordKey(resourceType string, id int, lang string) string {
	return resourceType + "/" + strconv.Itoa(id) + "?lang=" + lang
}
