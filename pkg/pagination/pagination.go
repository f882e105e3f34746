package pagination

import "strconv"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the single paging contract shared by every list endpoint.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page/limit query values, falling back to page=1 and the
// shared default limit on missing or malformed input.
func Parse(pageStr, limitStr string) Params {
	p := Params{Page: 1, Limit: DefaultLimit}

	if pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	if limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > MaxLimit {
				limit = MaxLimit
			}
			p.Limit = limit
		}
	}

	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasMore approximates next-page existence from the returned page
// length. A final page whose length happens to equal the limit reports
// true once more; the extra request returns an empty page.
func (p Params) HasMore(returned int) bool {
	return returned == p.Limit
}
