package alerts

import "github.com/agentstation/stockrecon/internal/cmd/emoji"

// Level is the severity of an alert. Its value is what structured output prints.
type Level string

const (
	// LevelSuccess is a finished run without anything to look at.
	LevelSuccess Level = "success"
	// LevelWarning is a finished run with discrepancies or incomplete documents.
	LevelWarning Level = "warning"
	// LevelError is a run that could not finish.
	LevelError Level = "error"
)

type style struct {
	icon  string
	color string
}

var styles = map[Level]style{
	LevelSuccess: {icon: emoji.Success, color: "\033[32m"},
	LevelWarning: {icon: emoji.Warning, color: "\033[33m"},
	LevelError:   {icon: emoji.Error, color: "\033[31m"},
}

const resetColor = "\033[0m"

// Icon returns the symbol printed in front of the alert.
func (l Level) Icon() string {
	if s, ok := styles[l]; ok {
		return s.icon
	}
	return emoji.Unknown
}

func (l Level) colorize(text string) string {
	s, ok := styles[l]
	if !ok {
		return text
	}
	return s.color + text + resetColor
}
