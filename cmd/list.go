package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/warpdl/cookiegetter/cmd/common"
	"github.com/warpdl/cookiegetter/pkg/cookies"
)

var lsFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "available, a",
		Usage: "only list stores that exist on disk (default: false)",
	},
	cli.BoolFlag{
		Name:  "paths, p",
		Usage: "show the path of each store (default: false)",
	},
}

// listImporters returns every discovered importer in display order. The
// numbering of this slice is what "select <num>" refers to.
func listImporters(mgr *cookies.Manager, availableOnly bool) ([]cookies.Importer, error) {
	rctx, cancel := runContext()
	defer cancel()
	importers, err := mgr.GetInstances(rctx, availableOnly)
	if err != nil {
		return nil, err
	}
	cookies.SortByPrimaryLevel(importers)
	return importers, nil
}

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	l := newLogger(ctx)
	defer l.Close()

	importers, err := listImporters(newManager(l), false)
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "discover", err)
		return errExit
	}
	w := stdout(ctx)
	showAvailable := ctx.Bool("available")
	showPaths := ctx.Bool("paths")

	if len(importers) == 0 {
		fmt.Fprintln(w, "cookiegetter: no cookie stores found")
		return nil
	}
	txt := "Here are your cookie stores:"
	txt += "\n\n|Num|" + common.Beaut("Browser", 20) + "|" + common.Beaut("Profile", 18) + "|" + common.Beaut("Engine", 12) + "|  Status  |"
	txt += "\n|---|--------------------|------------------|------------|----------|"
	var shown int
	for i, imp := range importers {
		available := imp.IsAvailable()
		if showAvailable && !available {
			continue
		}
		shown++
		conf := imp.Config()
		status := "missing"
		if available {
			status = "found"
		}
		txt += fmt.Sprintf("\n|%3d|%s|%s|%s|%s|",
			i+1,
			common.Fit(conf.Name, 20),
			common.Fit(conf.ProfileName, 18),
			common.Fit(conf.EngineID, 12),
			common.Beaut(status, 10),
		)
		if showPaths && conf.CookiePath != "" {
			txt += "\n|   |  " + conf.CookiePath
		}
	}
	txt += "\n|---|--------------------|------------------|------------|----------|"
	if shown == 0 {
		fmt.Fprintln(w, "cookiegetter: no available cookie stores found")
		return nil
	}
	fmt.Fprintln(w, txt)
	return nil
}
