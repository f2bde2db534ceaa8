package models

import "strings"

// EscapeText prepares text to be one field of a delimited line that is
// itself embedded in a JSON string. Texts containing a comma or hyphen
// get every quote doubled and the whole field quoted, both behind
// JSON escapes; other texts only get their quotes JSON escaped.
//
// For example `=HYPERLINK("u", "Full Rankings")` becomes
// `\"=HYPERLINK(\"\"u\"\", \"\"Full Rankings\"\")\"`.
func EscapeText(text string) string {
	quoted := strings.ContainsAny(text, ",-")
	marker := `\`
	if quoted {
		marker = `\"\`
	}

	var b strings.Builder
	b.Grow(len(text) + 4)
	if quoted {
		b.WriteString(`\"`)
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '"' {
			b.WriteString(marker)
		}
		b.WriteByte(text[i])
	}
	if quoted {
		b.WriteString(`\"`)
	}
	return b.String()
}
