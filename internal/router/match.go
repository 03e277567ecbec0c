package router

import (
	"net/url"
	"strings"
)

// Params holds the named segments bound by a pattern match.
type Params map[string]string

// Match reports whether path matches pattern and returns the bound
// parameters. Both are split on "/" with empty segments dropped; segment
// counts must be equal, literal segments must match exactly, and segments
// written ":name" bind the corresponding path segment under name.
func Match(pattern, path string) (Params, bool) {
	pp := segments(pattern)
	ps := segments(path)
	if len(pp) != len(ps) {
		return nil, false
	}

	params := Params{}
	for i, seg := range pp {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(ps[i])
			if err != nil {
				return nil, false
			}
			params[name] = v
			continue
		}
		if seg != ps[i] {
			return nil, false
		}
	}
	return params, true
}

func segments(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
