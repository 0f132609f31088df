package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/warpdl/cookiegetter/cmd/common"
	envs "github.com/warpdl/cookiegetter/common"
	"github.com/warpdl/cookiegetter/pkg/cookies"
	"github.com/warpdl/cookiegetter/pkg/logger"
	"github.com/warpdl/cookiegetter/pkg/selection"
)

// errExit makes the app exit with status 1 once the cause has been printed.
var errExit = cli.NewExitError("", 1)

var (
	newManager = func(l logger.Logger) *cookies.Manager {
		return cookies.NewDefaultManager(cookies.WithLogger(l))
	}
	newSelectionStore = func() selection.Store {
		return selection.NewDefaultStore(configDir())
	}
	storeFs = afero.NewOsFs()
)

func configDir() string {
	if dir := os.Getenv(envs.ConfigDirEnv); dir != "" {
		return dir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cookiegetter")
	}
	return filepath.Join(dir, "cookiegetter")
}

func stdout(ctx *cli.Context) io.Writer {
	if ctx.App.Writer != nil {
		return ctx.App.Writer
	}
	return os.Stdout
}

func stderr(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

// newLogger builds the diagnostics sink from COOKIEGETTER_DEBUG and
// COOKIEGETTER_LOG_FILE. The caller closes it.
func newLogger(ctx *cli.Context) logger.Logger {
	var backends []logger.Logger
	if os.Getenv(envs.DebugEnv) == "1" {
		backends = append(backends, logger.NewStandardLogger(log.New(stderr(ctx), "cookiegetter: ", 0)))
	}
	if path := os.Getenv(envs.LogFileEnv); path != "" {
		fl, err := logger.NewFileLogger(path)
		if err != nil {
			common.PrintRuntimeErr(ctx, ctx.Command.Name, "log_file", err)
		} else {
			backends = append(backends, fl)
		}
	}
	if len(backends) == 0 {
		return logger.NewNopLogger()
	}
	var l logger.Logger = logger.NewMultiLogger(backends...)
	if name := ctx.Command.Name; name != "" {
		l = logger.NewPrefixLogger(l, name+": ")
	}
	return l
}

func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// parseTarget accepts "https://host/path" or a bare "host/path", which is
// read as https.
func parseTarget(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("no url given")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	return u, nil
}

// fileConfig describes a store the user pointed at directly. The engine is
// sniffed from the file unless given.
func fileConfig(path, engine string) (cookies.BrowserConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return cookies.BrowserConfig{}, err
	}
	if engine == "" {
		engine, err = cookies.DetectEngine(storeFs, abs)
		if err != nil {
			return cookies.BrowserConfig{}, err
		}
	}
	return cookies.NewBrowserConfig("File", filepath.Base(abs), "", engine).WithCookiePath(abs), nil
}

// storeFilter matches configs by browser name, profile name and engine,
// case-insensitively. Empty criteria match everything.
func storeFilter(browser, profile, engine string) cookies.BrowserConfigFilter {
	if browser == "" && profile == "" && engine == "" {
		return nil
	}
	return func(c cookies.BrowserConfig) bool {
		if browser != "" && !strings.EqualFold(c.Name, browser) {
			return false
		}
		if profile != "" && !strings.EqualFold(c.ProfileName, profile) {
			return false
		}
		if engine != "" && !strings.EqualFold(c.EngineID, engine) {
			return false
		}
		return true
	}
}
