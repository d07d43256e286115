package attach

import (
	"regexp"
	"strings"
)

var unquotedSafe = regexp.MustCompile(`^[\w@%+=:,./-]+$`)

// shellQuote quotes a single token for safe interpolation into a remote
// shell command line.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if unquotedSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}

// shellQuoteCmd joins argv into a single shell command line, quoting each
// token as needed. Used to build the trailing argument handed to `ssh`,
// which always runs it through the remote user's shell.
func shellQuoteCmd(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}
