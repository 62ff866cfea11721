// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = color.New(color.Bold, color.FgHiWhite)
	commandStyle = color.New(color.FgHiGreen)
	exampleStyle = color.New(color.FgHiCyan)
	flagStyle    = color.New(color.Bold, color.FgHiCyan)
	argStyle     = color.New(color.FgHiYellow)
)

var HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if .Runnable}}{{.UsageString}}{{end}}` + titleStyle.Sprintf("GitHub:") + color.New(color.FgYellow).Sprintln(
	"		https://github.com/Hanaasagi/repat",
)

var (
	reWithShort  = regexp.MustCompile(`^( {2,})(-[a-zA-Z]), (--[a-zA-Z0-9-]+)(.*)$`)
	reLongOnly   = regexp.MustCompile(`^( {2,})(--[a-zA-Z0-9-]+)(.*)$`)
	rePositional = regexp.MustCompile(`\b[A-Z][A-Z_]+\b`)
)

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// colorFlags highlights the flag names in cobra's flag usage block
func colorFlags(raw string) []byte {
	var out bytes.Buffer

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case reWithShort.MatchString(line):
			m := reWithShort.FindStringSubmatch(line)
			out.WriteString(m[1])
			flagStyle.Fprint(&out, m[2])
			out.WriteString(", ")
			out.WriteString(m[3])
			out.WriteString(m[4])
		case reLongOnly.MatchString(line):
			m := reLongOnly.FindStringSubmatch(line)
			out.WriteString(m[1])
			flagStyle.Fprint(&out, m[2])
			out.WriteString(m[3])
		default:
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}

	return out.Bytes()
}

// colorUseLine paints the command name and the positional argument names
func colorUseLine(useLine string) string {
	name, rest, _ := strings.Cut(useLine, " ")
	colored := rePositional.ReplaceAllStringFunc(rest, func(arg string) string {
		return argStyle.Sprint(arg)
	})
	return commandStyle.Sprint(name) + " " + colored
}

// ColorUsageFunc writes a colored usage block for a single command
func ColorUsageFunc(w io.Writer, c *cobra.Command) error {
	buf := &bytes.Buffer{}

	titleStyle.Fprint(buf, "Usage:")
	fmt.Fprint(buf, "\n  ")
	fmt.Fprint(buf, colorUseLine(c.UseLine()))

	if c.HasExample() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Examples:")
		fmt.Fprint(buf, "\n")
		exampleStyle.Fprint(buf, c.Example)
	}

	if c.HasAvailableLocalFlags() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(c.LocalFlags().FlagUsages())))
	} else {
		fmt.Fprintln(buf)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
