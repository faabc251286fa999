package ignore

import (
	"regexp"
	"strings"
)

// translateGlob converts one gitignore-style glob into anchored regular
// expression source. '*' matches within a path segment, '?' matches a single
// character, '**' crosses segment boundaries, a trailing '/' restricts the
// pattern to directory paths, and a leading '/' roots it at the workspace
// instead of matching at any depth.
func translateGlob(glob string) string {
	rooted := strings.HasPrefix(glob, "/")
	glob = strings.TrimPrefix(glob, "/")
	dirOnly := strings.HasSuffix(glob, "/")
	glob = strings.TrimSuffix(glob, "/")

	var body strings.Builder
	if strings.HasPrefix(glob, "**/") {
		body.WriteString("(.*/)?")
		glob = strings.TrimPrefix(glob, "**/")
	}

	for i := 0; i < len(glob); i++ {
		switch {
		case strings.HasPrefix(glob[i:], "/**/"):
			body.WriteString("(/|/.+/)")
			i += 3
		case glob[i:] == "/**":
			body.WriteString("(/.*)?")
			i += 2
		case glob[i] == '*':
			body.WriteString("[^/]*")
		case glob[i] == '?':
			body.WriteString(".")
		default:
			body.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}

	if dirOnly {
		body.WriteString("/(/.*)?$")
	} else {
		body.WriteString("(|/.*)?$")
	}

	if rooted {
		return "^" + body.String()
	}
	return "^(|.*/)" + body.String()
}
