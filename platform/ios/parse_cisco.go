package ios

import "strings"

var commandErrHints = []string{
	"invalid input",
	"unknown command",
	"incomplete command",
	"ambiguous command",
	"unrecognized command",
	"invalid command",
	"syntax error",
	"cannot find command",
}

func isIOSCommandError(output string) bool {
	lower := strings.ToLower(output)
	for _, keyword := range commandErrHints {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func isIOSVersion(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "cisco ios") || strings.Contains(lower, "ios-xe")
}
