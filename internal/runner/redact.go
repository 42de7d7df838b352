package runner

import "strings"

const redacted = "[REDACTED]"

// passwordFlags take a secret as their next argument.
var passwordFlags = map[string]bool{
	"-p":         true,
	"--password": true,
}

// Redact returns a copy of args with password values masked, for logs and
// stored history. The argv handed to the process is never modified.
func Redact(args []string) []string {
	out := make([]string, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case passwordFlags[a] && i+1 < len(args):
			out[i] = a
			out[i+1] = redacted
			i++
		case strings.HasPrefix(a, "--password="):
			out[i] = "--password=" + redacted
		default:
			out[i] = a
		}
	}
	return out
}
