package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/urfave/cli"
	"github.com/warpdl/cookiegetter/cmd/common"
	envs "github.com/warpdl/cookiegetter/common"
	"github.com/warpdl/cookiegetter/pkg/cookies"
	"github.com/warpdl/cookiegetter/pkg/logger"
)

const (
	formatHeader   = "header"
	formatNetscape = "netscape"
	formatJSON     = "json"
)

var sourceFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "browser, b",
		Usage:  "only use stores of this browser (e.g. Firefox)",
		EnvVar: envs.BrowserEnv,
	},
	cli.StringFlag{
		Name:   "profile, p",
		Usage:  "only use stores of this browser profile",
		EnvVar: envs.ProfileEnv,
	},
	cli.StringFlag{
		Name:  "engine, e",
		Usage: "only use stores of this engine (Gecko, Blink, IE, IEFindCache, Netscape)",
	},
	cli.StringFlag{
		Name:  "file, f",
		Usage: "read this cookie store directly instead of searching",
	},
	cli.BoolFlag{
		Name:  "selected, s",
		Usage: "use the store remembered by \"cookiegetter select\"",
	},
}

var (
	getFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:  "format, o",
			Usage: "output format: header, netscape or json",
			Value: formatHeader,
		},
	}, sourceFlags...)

	exportFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:  "output, O",
			Usage: "write to this file instead of stdout",
		},
	}, sourceFlags...)
)

type jsonCookie struct {
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Domain   string     `json:"domain"`
	Path     string     `json:"path"`
	Expires  *time.Time `json:"expires,omitempty"`
	Secure   bool       `json:"secure"`
	HttpOnly bool       `json:"http_only"`
}

// importFor resolves the store chosen by the source flags and imports the
// cookies sendable to u.
func importFor(ctx *cli.Context, l logger.Logger, u *url.URL) (*cookies.CookieJar, cookies.Importer, error) {
	rctx, cancel := runContext()
	defer cancel()

	jar := cookies.NewCookieJar()
	var imp cookies.Importer
	var err error
	switch {
	case ctx.String("file") != "":
		var conf cookies.BrowserConfig
		conf, err = fileConfig(ctx.String("file"), ctx.String("engine"))
		if err != nil {
			return nil, nil, err
		}
		imp, err = cookies.NewImporter(conf, cookies.LevelDerivative, cookies.WithLogger(l))
	case ctx.Bool("selected"):
		imp, err = selectedImporter(rctx, l)
	default:
		filter := storeFilter(ctx.String("browser"), ctx.String("profile"), ctx.String("engine"))
		imp, err = newManager(l).ImportFirst(rctx, filter, u, jar)
		return jar, imp, err
	}
	if err != nil {
		return nil, nil, err
	}
	if res := imp.GetCookies(u, jar); res != cookies.Success {
		return nil, imp, fmt.Errorf("%s: %s", imp.Config(), res)
	}
	return jar, imp, nil
}

// selectedImporter resolves the remembered store. A customized store that no
// browser manager claims is opened directly.
func selectedImporter(ctx context.Context, l logger.Logger) (cookies.Importer, error) {
	conf, err := newSelectionStore().Load()
	if err != nil {
		return nil, err
	}
	imp, err := newManager(l).GetInstance(ctx, conf, !conf.IsCustomized)
	if errors.Is(err, cookies.ErrImporterNotFound) && conf.IsCustomized {
		return cookies.NewImporter(conf, cookies.LevelDerivative, cookies.WithLogger(l))
	}
	return imp, err
}

func writeCookies(w io.Writer, format string, jar *cookies.CookieJar, u *url.URL) error {
	switch format {
	case formatHeader:
		_, err := fmt.Fprintln(w, jar.HeaderValue(u))
		return err
	case formatNetscape:
		return cookies.WriteNetscape(w, jar.Sendable(u))
	case formatJSON:
		sendable := jar.Sendable(u)
		out := make([]jsonCookie, len(sendable))
		for i, c := range sendable {
			out[i] = jsonCookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			}
			if !c.Expiry.IsZero() {
				exp := c.Expiry
				out[i].Expires = &exp
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func get(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	u, err := parseTarget(ctx.Args().First())
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	format := ctx.String("format")
	if format != formatHeader && format != formatNetscape && format != formatJSON {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("unknown output format %q", format))
	}

	l := newLogger(ctx)
	defer l.Close()

	jar, imp, err := importFor(ctx, l, u)
	if err != nil {
		common.PrintRuntimeErr(ctx, "get", "import", err)
		return errExit
	}
	l.Info("imported %d cookies from %s", jar.Len(), imp.Config())
	if err := writeCookies(stdout(ctx), format, jar, u); err != nil {
		common.PrintRuntimeErr(ctx, "get", "write", err)
		return errExit
	}
	return nil
}

func export(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	u, err := parseTarget(ctx.Args().First())
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}

	l := newLogger(ctx)
	defer l.Close()

	jar, imp, err := importFor(ctx, l, u)
	if err != nil {
		common.PrintRuntimeErr(ctx, "export", "import", err)
		return errExit
	}

	output := ctx.String("output")
	if output == "" {
		if err := writeCookies(stdout(ctx), formatNetscape, jar, u); err != nil {
			common.PrintRuntimeErr(ctx, "export", "write", err)
			return errExit
		}
		return nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		common.PrintRuntimeErr(ctx, "export", "create", err)
		return errExit
	}
	err = writeCookies(f, formatNetscape, jar, u)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		common.PrintRuntimeErr(ctx, "export", "write", err)
		return errExit
	}
	fmt.Fprintf(stdout(ctx), "exported %d cookies from %s to %s\n", len(jar.Sendable(u)), imp.Config(), output)
	return nil
}
