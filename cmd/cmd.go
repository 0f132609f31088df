package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
	"github.com/warpdl/cookiegetter/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	return newApp(bArgs).Run(args)
}

func newApp(bArgs BuildArgs) *cli.App {
	app := &cli.App{
		Name:                  "cookiegetter",
		HelpName:              "cookiegetter",
		Usage:                 "Reuse your browser sessions from the command line.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "cookiegetter <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "list",
				Aliases:                []string{"l"},
				Usage:                  "list the cookie stores found on this machine",
				Action:                 list,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ListDescription,
				UseShortOptionHandling: true,
				Flags:                  lsFlags,
			},
			{
				Name:                   "get",
				Aliases:                []string{"g"},
				Usage:                  "print the cookies a browser would send to a url",
				Action:                 get,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            GetDescription,
				UseShortOptionHandling: true,
				Flags:                  getFlags,
			},
			{
				Name:                   "export",
				Aliases:                []string{"e"},
				Usage:                  "export the cookies for a url as cookies.txt",
				Action:                 export,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ExportDescription,
				UseShortOptionHandling: true,
				Flags:                  exportFlags,
			},
			{
				Name:                   "select",
				Aliases:                []string{"s"},
				Usage:                  "remember a cookie store for later commands",
				Action:                 selectStore,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            SelectDescription,
				UseShortOptionHandling: true,
				Flags:                  selFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of cookiegetter",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app
}
