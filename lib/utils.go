// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

// SplitLineIntoParts splits an IRC line into alternating runs of spaces and
// tokens, so that joining the parts gives back the line. After the command,
// a token starting with ':' is the trailing parameter and runs to the end.
func SplitLineIntoParts(line string) (parts []string) {
	haveCommand := false
	for start := 0; start < len(line); {
		end := start
		switch {
		case line[start] == ' ':
			for end < len(line) && line[end] == ' ' {
				end++
			}
		case haveCommand && line[start] == ':':
			end = len(line)
		default:
			for end < len(line) && line[end] != ' ' {
				end++
			}
			// tags and source come before the command
			if end < len(line) && line[start] != '@' && line[start] != ':' {
				haveCommand = true
			}
		}
		parts = append(parts, line[start:end])
		start = end
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	return parts
}
