// Package common provides shared helpers for the cookiegetter commands:
// help and version output, runtime error reporting and table formatting.
package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"
)

// VersionCmdStr holds the formatted version string displayed by the version command.
// It is populated at runtime by the Execute function with build-time information
// including version, platform, build date, and commit hash.
var VersionCmdStr string

var (
	showAppHelpAndExit = cli.ShowAppHelpAndExit
	showCommandHelp    = cli.ShowCommandHelp
)

// Help displays help information for the application or a specific command.
// With no argument (or "help") it prints the application help and exits.
func Help(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" || arg == "help" {
		fmt.Fprintf(stdout(ctx), "%s %s\n", ctx.App.Name, ctx.App.Version)
		showAppHelpAndExit(ctx, 0)
		return nil
	}
	err := showCommandHelp(ctx, arg)
	if err != nil {
		return err
	}
	return nil
}

// GetVersion prints VersionCmdStr.
func GetVersion(ctx *cli.Context) error {
	fmt.Fprintln(stdout(ctx), VersionCmdStr)
	return nil
}

// PrintRuntimeErr prints "<app>: <cmd>[<action>]: <err>" to the app's error
// writer. The ctx parameter may be nil, in which case the application name
// is derived from os.Args[0] and the message goes to stderr.
func PrintRuntimeErr(ctx *cli.Context, cmd, action string, err error) {
	if err == nil {
		fmt.Fprintln(stderr(ctx), "err is nil", "[", cmd, "|", action, "]")
		return
	}
	var name string
	if ctx != nil && ctx.App != nil {
		name = ctx.App.HelpName
	} else {
		name = os.Args[0]
	}
	fmt.Fprintf(stderr(ctx), "%s: %s[%s]: %s\n", name, cmd, action, err.Error())
}

// PrintErrWithCmdHelp prints the error message followed by the current
// command's help text.
func PrintErrWithCmdHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(
		ctx,
		err,
		func() {
			err := showCommandHelp(ctx, ctx.Command.Name)
			if err != nil {
				fmt.Fprintln(stderr(ctx), err.Error())
			}
		},
	)
}

// PrintErrWithHelp prints the error message followed by the application
// help text and exits with status code 1.
func PrintErrWithHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(
		ctx,
		err,
		func() {
			showAppHelpAndExit(ctx, 1)
		},
	)
}

func printErrWithCallback(ctx *cli.Context, err error, callback func()) error {
	if err == nil {
		return nil
	}
	estr := strings.ToLower(err.Error())
	if estr == "flag: help requested" {
		return Help(ctx)
	}
	if strings.Contains(estr, "-version") ||
		strings.Contains(estr, "-v") {
		return GetVersion(ctx)
	}
	fmt.Fprintf(stderr(ctx), "%s: %s\n\n", ctx.App.HelpName, err.Error())
	callback()
	return nil
}

// UsageErrorCallback is the OnUsageError hook for cli.App and cli.Command.
// It shows command help for command-level errors and application help
// otherwise.
func UsageErrorCallback(ctx *cli.Context, err error, _ bool) error {
	if ctx.Command.Name != "" {
		return PrintErrWithCmdHelp(ctx, err)
	}
	return PrintErrWithHelp(ctx, err)
}

func stdout(ctx *cli.Context) io.Writer {
	if ctx != nil && ctx.App != nil && ctx.App.Writer != nil {
		return ctx.App.Writer
	}
	return os.Stdout
}

func stderr(ctx *cli.Context) io.Writer {
	if ctx != nil && ctx.App != nil && ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

// Beaut centers a string within a field of width n by padding with spaces.
// If n minus the string length is odd, an extra space is appended at the end.
func Beaut(s string, n int) (b string) {
	n1 := len(s)
	x := n - n1
	x1 := x / 2
	w := string(
		replic(' ', x1),
	)
	b = w
	b += s
	b += w
	if x%2 != 0 {
		b += " "
	}
	return
}

// Fit truncates s to n bytes, marking the cut with "..", or pads it with
// spaces to exactly n bytes.
func Fit(s string, n int) string {
	if len(s) > n {
		if n <= 2 {
			return s[:n]
		}
		return s[:n-2] + ".."
	}
	return s + string(replic(' ', n-len(s)))
}

func replic[aT any](v aT, n int) []aT {
	if n < 0 {
		n = 0
	}
	a := make([]aT, n)
	for i := range a {
		a[i] = v
	}
	return a
}
