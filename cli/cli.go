package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const width = 80

var (
	// Colors.
	labelColor  = color.New(color.Bold)
	valueColor  = color.New(color.FgCyan)
	formatColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	mutedColor  = color.New(color.FgYellow)
)

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	formatColor.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", width-len(title)-len(separator1))
	output := fmt.Sprintf("%s%s%s", separator1, title, separator2)
	formatColor.Println(output)
}

// Field prints a labeled value.
func Field(label string, value any) {
	labelColor.Printf("%s: ", label)
	valueColor.Printf("%v\n", value)
}

// Info printed to cli.
func Info(text string, args ...any) {
	valueColor.Printf(text+"\n", args...)
}

// Muted printed to cli.
func Muted(text string, args ...any) {
	mutedColor.Printf(text+"\n", args...)
}

// Error printed to cli.
func Error(text string, args ...any) {
	errorColor.Printf(text+"\n", args...)
}
