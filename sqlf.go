package sqlstrings

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// formatCacheSize bounds how many distinct Sqlf format strings keep their
// parsed parts.
const formatCacheSize = 256

var formatCache = mustFormatCache()

func mustFormatCache() *lru.Cache[string, []string] {
	c, err := lru.New[string, []string](formatCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// Sqlf builds a Template from a format string. Every %v marks one
// interpolated value and %% is a literal percent sign; no other verbs are
// accepted.
//
//	sqlstrings.Sqlf(`
//		SELECT * FROM %v
//		WHERE name = %v
//	`, sqlstrings.Ident("users"), name)
//
// It is equivalent to calling SQL with the text between the verbs as parts.
func Sqlf(format string, values ...any) (*Template, error) {
	parts, err := splitFormat(format)
	if err != nil {
		return nil, err
	}
	if len(parts) != len(values)+1 {
		return nil, fmt.Errorf("%w: format has %d %%v verbs but %d values were given",
			ErrInvalidArgument, len(parts)-1, len(values))
	}
	return SQL(parts, values...)
}

// splitFormat returns the literal text between %v verbs. Results are cached
// and must not be modified.
func splitFormat(format string) ([]string, error) {
	if parts, ok := formatCache.Get(format); ok {
		return parts, nil
	}

	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			cur.WriteByte(c)
			continue
		}
		if i+1 == len(format) {
			return nil, fmt.Errorf("%w: format ends with a lone %%", ErrInvalidArgument)
		}
		i++
		switch format[i] {
		case '%':
			cur.WriteByte('%')
		case 'v':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			return nil, fmt.Errorf("%w: unsupported verb %%%c at offset %d, only %%v and %%%% are allowed",
				ErrInvalidArgument, format[i], i-1)
		}
	}
	parts = append(parts, cur.String())

	formatCache.Add(format, parts)
	return parts, nil
}
