package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli"
	"github.com/warpdl/cookiegetter/cmd/common"
	envs "github.com/warpdl/cookiegetter/common"
	"github.com/warpdl/cookiegetter/pkg/cookies"
	"github.com/warpdl/cookiegetter/pkg/selection"
)

var selFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "browser, b",
		Usage:  "select the store of this browser",
		EnvVar: envs.BrowserEnv,
	},
	cli.StringFlag{
		Name:   "profile, p",
		Usage:  "select the store of this browser profile",
		EnvVar: envs.ProfileEnv,
	},
	cli.StringFlag{
		Name:  "engine, e",
		Usage: "engine of the store given with --file (detected when omitted)",
	},
	cli.StringFlag{
		Name:  "file, f",
		Usage: "select a cookie store file or cache directory by path",
	},
	cli.BoolFlag{
		Name:  "show",
		Usage: "print the current selection",
	},
	cli.BoolFlag{
		Name:  "clear",
		Usage: "forget the current selection",
	},
}

func selectStore(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	store := newSelectionStore()
	w := stdout(ctx)

	switch {
	case ctx.Bool("clear"):
		if err := store.Clear(); err != nil {
			common.PrintRuntimeErr(ctx, "select", "clear", err)
			return errExit
		}
		fmt.Fprintln(w, "cookiegetter: selection cleared")
		return nil
	case ctx.Bool("show"):
		conf, err := store.Load()
		if errors.Is(err, selection.ErrNoSelection) {
			fmt.Fprintln(w, "cookiegetter: no cookie store selected")
			return nil
		}
		if err != nil {
			common.PrintRuntimeErr(ctx, "select", "load", err)
			return errExit
		}
		printSelection(ctx, conf)
		return nil
	}

	l := newLogger(ctx)
	defer l.Close()

	var conf cookies.BrowserConfig
	var err error
	switch {
	case ctx.String("file") != "":
		conf, err = fileConfig(ctx.String("file"), ctx.String("engine"))
		if err != nil {
			common.PrintRuntimeErr(ctx, "select", "detect", err)
			return errExit
		}
	case ctx.NArg() > 0:
		n, perr := strconv.Atoi(ctx.Args().First())
		if perr != nil {
			return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("invalid store number %q", ctx.Args().First()))
		}
		importers, lerr := listImporters(newManager(l), false)
		if lerr != nil {
			common.PrintRuntimeErr(ctx, "select", "discover", lerr)
			return errExit
		}
		if n < 1 || n > len(importers) {
			return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("store number %d out of range 1-%d", n, len(importers)))
		}
		conf = importers[n-1].Config()
	case ctx.String("browser") != "" || ctx.String("profile") != "":
		conf, err = findStore(newManager(l), storeFilter(ctx.String("browser"), ctx.String("profile"), ctx.String("engine")))
		if err != nil {
			common.PrintRuntimeErr(ctx, "select", "find", err)
			return errExit
		}
	default:
		return common.PrintErrWithCmdHelp(ctx, errors.New("nothing to select"))
	}

	if err := store.Save(conf); err != nil {
		common.PrintRuntimeErr(ctx, "select", "save", err)
		return errExit
	}
	printSelection(ctx, conf)
	return nil
}

// findStore returns the first available store accepted by filter, falling
// back to the first store accepted at all.
func findStore(mgr *cookies.Manager, filter cookies.BrowserConfigFilter) (cookies.BrowserConfig, error) {
	importers, err := listImporters(mgr, false)
	if err != nil {
		return cookies.BrowserConfig{}, err
	}
	var first *cookies.BrowserConfig
	for _, imp := range importers {
		conf := imp.Config()
		if filter != nil && !filter(conf) {
			continue
		}
		if imp.IsAvailable() {
			return conf, nil
		}
		if first == nil {
			first = &conf
		}
	}
	if first != nil {
		return *first, nil
	}
	return cookies.BrowserConfig{}, cookies.ErrImporterNotFound
}

func printSelection(ctx *cli.Context, conf cookies.BrowserConfig) {
	w := stdout(ctx)
	fmt.Fprintf(w, "selected: %s\n", conf)
	if conf.CookiePath != "" {
		fmt.Fprintf(w, "store:    %s\n", conf.CookiePath)
	}
}
