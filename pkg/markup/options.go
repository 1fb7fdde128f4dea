package markup

import (
	"regexp"
	"strings"

	"src.kaj.sh/pkg/tnode"
)

var optionRegexp = regexp.MustCompile(`^:([^:]+):(.*)$`)

// ParseOptions splits the body of a directive into its option block and the
// rest. The option block is the longest run of leading ":key: value" lines;
// it ends at the first line of another form, including an empty line. Values
// are trimmed, and a repeated key takes the last value.
//
// It also returns the number of lines in the option block.
func ParseOptions(text string) (opts tnode.Options, rest string, n int) {
	lines := strings.Split(text, "\n")
	for n < len(lines) && lines[n] != "" {
		m := optionRegexp.FindStringSubmatch(lines[n])
		if m == nil {
			break
		}
		opts.Set(m[1], Trim(m[2]))
		n++
	}
	return opts, strings.Join(lines[n:], "\n"), n
}
