package infra

import (
	"strings"

	. "github.com/lex00/lambda-aurora-go/intrinsics"
)

func nameTag(name any) []any {
	return []any{Tag{Key: "Name", Value: name}}
}

// kebab turns SyncBounded into sync-bounded.
func kebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
