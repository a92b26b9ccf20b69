package cmd

import "strings"

// legacyCustomPath is the two-letter short option accepted for --custom-path.
const legacyCustomPath = "-cp"

// rewriteLegacyArgs turns "-cp VALUE" and "-cp=VALUE" into their long form,
// since pflag shorthands are limited to a single letter.
// Arguments after "--" are left untouched.
func rewriteLegacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == legacyCustomPath:
			out = append(out, "--custom-path")
		case strings.HasPrefix(arg, legacyCustomPath+"="):
			out = append(out, "--custom-path="+strings.TrimPrefix(arg, legacyCustomPath+"="))
		default:
			out = append(out, arg)
		}
	}
	return out
}
