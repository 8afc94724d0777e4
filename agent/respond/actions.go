package respond

import (
	"regexp"
	"strings"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// Action directives ride inside generated text as [ACTION:name:param] tags.
// Plain bracketed tokens remain entity mentions and are left alone. The
// micro-format is isolated here so the upstream text contract can change
// without touching the generator.
var actionTagPattern = regexp.MustCompile(`\[ACTION:([a-z][a-z0-9_]*):([^\[\]]*)\]`)

// ActionExtractor splits a raw reply into display text and directives.
type ActionExtractor interface {
	Extract(raw string) (text string, actions []contractx.Action)
}

type bracketTagExtractor struct{}

// NewActionExtractor returns the bracket-tag parser.
func NewActionExtractor() ActionExtractor {
	return bracketTagExtractor{}
}

func (bracketTagExtractor) Extract(raw string) (string, []contractx.Action) {
	var actions []contractx.Action
	for _, m := range actionTagPattern.FindAllStringSubmatch(raw, -1) {
		actions = append(actions, contractx.Action{
			Name:  m[1],
			Param: strings.TrimSpace(m[2]),
		})
	}

	text := actionTagPattern.ReplaceAllString(raw, "")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(doubleSpacePattern.ReplaceAllString(line, " "), " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), actions
}

var doubleSpacePattern = regexp.MustCompile(`[ \t]{2,}`)
