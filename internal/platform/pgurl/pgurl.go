// Package pgurl fills in lib/pq connection settings on a Postgres DSN. Both
// the URL form and the key=value form are accepted.
package pgurl

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Options struct {
	// ApplicationName shows up in pg_stat_activity.
	ApplicationName string
	ConnectTimeout  time.Duration
}

// Normalize adds the options that the DSN does not already set. Values the
// operator put in DB_URL always win.
func Normalize(raw string, opts Options) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	params := make([][2]string, 0, 2)
	if name := strings.TrimSpace(opts.ApplicationName); name != "" {
		params = append(params, [2]string{"application_name", name})
	}
	if opts.ConnectTimeout > 0 {
		seconds := max(int(opts.ConnectTimeout/time.Second), 1)
		params = append(params, [2]string{"connect_timeout", strconv.Itoa(seconds)})
	}
	if len(params) == 0 {
		return raw
	}

	if isURL(raw) {
		parsed, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		query := parsed.Query()
		for _, p := range params {
			if query.Get(p[0]) == "" {
				query.Set(p[0], p[1])
			}
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	existing := keywordValues(raw)
	var b strings.Builder
	b.WriteString(raw)
	for _, p := range params {
		if _, ok := existing[p[0]]; ok {
			continue
		}
		b.WriteString(" ")
		b.WriteString(p[0])
		b.WriteString("=")
		b.WriteString(quoteValue(p[1]))
	}
	return b.String()
}

// DBName returns the database name for trace attributes, or "" when the DSN
// does not name one.
func DBName(raw string) string {
	raw = strings.TrimSpace(raw)
	if isURL(raw) {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	return keywordValues(raw)["dbname"]
}

func isURL(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}

// keywordValues parses space separated key=value pairs. Single quoted values
// may contain spaces.
func keywordValues(raw string) map[string]string {
	out := make(map[string]string)
	rest := raw
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return out
		}
		key, after, ok := strings.Cut(rest, "=")
		if !ok {
			return out
		}
		key = strings.TrimSpace(key)
		after = strings.TrimLeft(after, " \t")

		var value string
		if strings.HasPrefix(after, "'") {
			end := strings.Index(after[1:], "'")
			if end < 0 {
				out[key] = after[1:]
				return out
			}
			value = after[1 : end+1]
			rest = after[end+2:]
		} else {
			value, rest, _ = strings.Cut(after, " ")
		}
		out[key] = value
	}
}

func quoteValue(v string) string {
	if strings.ContainsAny(v, " '\\") {
		return "'" + strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), "'", `\'`) + "'"
	}
	return v
}
