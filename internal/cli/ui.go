package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Widget state colours in play and diff reuse these.
var (
	colorAccent  = lipgloss.Color("36")
	colorAdded   = lipgloss.Color("35")
	colorChanged = lipgloss.Color("220")
	colorRemoved = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorValue   = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorValue)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorAdded)
	StyleWarning = lipgloss.NewStyle().Foreground(colorChanged)
	StyleError   = lipgloss.NewStyle().Foreground(colorRemoved)

	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(18)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
)

const iconArrow = "→"

// statusIcon pairs a leading glyph with its colour.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusIcon{"✓", StyleSuccess}
	markError   = statusIcon{"✗", StyleError}
	markWarning = statusIcon{"!", StyleWarning}
	markInfo    = statusIcon{"›", lipgloss.NewStyle().Foreground(colorLabel)}
)

// stdout receives status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

func (i statusIcon) println(text string) {
	fmt.Fprintln(stdout, i.style.Render(i.glyph)+" "+text)
}

func printSuccess(format string, args ...any) { markSuccess.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markError.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarises an operation result, e.g.
// "  5 widgets · 2 moved · cached".
func printStats(widgets, changed int, cached bool) {
	source := StyleDim.Render("fresh")
	if cached {
		source = StyleSuccess.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fields := []string{
		StyleDim.Render(fmt.Sprintf("%d widgets", widgets)),
		StyleDim.Render(fmt.Sprintf("%d moved", changed)),
		source,
	}
	fmt.Fprintln(stdout, "  "+strings.Join(fields, sep))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
