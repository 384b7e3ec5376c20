package event

import (
	"regexp"
	"strings"
)

// compile turns a glob trigger into a regexp anchored at the start only:
// "*" matches any run of characters and "?" a single character.
func compile(trigger string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(trigger)
	quoted = strings.NewReplacer(`\*`, `.*`, `\?`, `.`).Replace(quoted)
	return regexp.MustCompile("^" + quoted)
}

// Match reports whether event matches the trigger pattern.
func Match(trigger, event string) bool {
	return compile(trigger).MatchString(event)
}
