package standardize

import "strings"

const systemPrompt = `You convert spreadsheet date values to ISO calendar dates.
Reply with exactly one line per input value, in the same order, and nothing else.
Each line is either a date formatted YYYY-MM-DD or the word invalid when the value
is not recognizable as a date. Do not number the lines or add commentary.`

func buildUserPrompt(values []string) string {
	var b strings.Builder
	b.WriteString("Standardize these date values, one per line:\n")
	for _, v := range values {
		b.WriteString(strings.ReplaceAll(v, "\n", " "))
		b.WriteByte('\n')
	}
	return b.String()
}
