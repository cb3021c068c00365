package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/pthm/sqlstrings"
)

// Argument prefixes select the fragment an --arg value becomes. Values
// without a prefix are parsed as YAML and bound as parameters.
const (
	PrefixIdent = "ident:"
	PrefixRaw   = "raw:"
	PrefixCols  = "cols:"
	PrefixList  = "list:"
)

// ParseArgs parses each --arg value with ParseArg.
func ParseArgs(raw []string) ([]any, error) {
	values := make([]any, len(raw))
	for i, s := range raw {
		v, err := ParseArg(s)
		if err != nil {
			return nil, fmt.Errorf("arg %d (%q): %w", i+1, s, err)
		}
		values[i] = v
	}
	return values, nil
}

// ParseArg converts one command-line value into a template value:
//
//	ident:users.name   identifier
//	raw:now()          raw SQL text
//	cols:[id, name]    columnized identifiers (YAML list)
//	list:[1, 2, 3]     parameterized values (YAML list)
//	42, true, null     YAML scalars, bound as parameters
//	'{a: 1}'           YAML mappings, bound as parameters
func ParseArg(s string) (any, error) {
	switch {
	case strings.HasPrefix(s, PrefixIdent):
		name := strings.TrimPrefix(s, PrefixIdent)
		if name == "" {
			return nil, errors.New("empty identifier")
		}
		return sqlstrings.Ident(name), nil

	case strings.HasPrefix(s, PrefixRaw):
		return sqlstrings.Raw(strings.TrimPrefix(s, PrefixRaw)), nil

	case strings.HasPrefix(s, PrefixCols):
		var cols []string
		if err := yaml.Unmarshal([]byte(strings.TrimPrefix(s, PrefixCols)), &cols); err != nil {
			return nil, fmt.Errorf("parsing column list: %w", err)
		}
		return sqlstrings.Columnize(cols), nil

	case strings.HasPrefix(s, PrefixList):
		v, err := ParseValue(strings.TrimPrefix(s, PrefixList))
		if err != nil {
			return nil, err
		}
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("list: expected a YAML sequence, got %T", v)
		}
		return sqlstrings.Parameterize(list), nil
	}

	return ParseValue(s)
}

// ParseValue decodes s as YAML. Integers become int64 and other numbers
// float64; everything else follows the usual JSON mapping.
func ParseValue(s string) (any, error) {
	j, err := yaml.YAMLToJSON([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("parsing value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(j))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		for i := range v {
			v[i] = normalizeNumbers(v[i])
		}
		return v
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeNumbers(e)
		}
		return v
	}
	return v
}
