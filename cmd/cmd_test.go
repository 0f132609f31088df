package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli"
	"github.com/warpdl/cookiegetter/pkg/cookies"
	"github.com/warpdl/cookiegetter/pkg/logger"
	"github.com/warpdl/cookiegetter/pkg/selection"
)

func TestMain(m *testing.M) {
	cli.OsExiter = func(int) {}
	os.Exit(m.Run())
}

const netscapeFixture = "# Netscape HTTP Cookie File\n" +
	".example.com\tTRUE\t/\tFALSE\t0\tsid\tabc123\n" +
	"example.com\tFALSE\t/\tTRUE\t0\ttheme\tdark\n" +
	".other.org\tTRUE\t/\tFALSE\t0\tx\ty\n"

// testEnv points the CLI at a Netscape store in a temp dir and a file-based
// selection store.
type testEnv struct {
	dir       string
	storePath string
	out       *bytes.Buffer
	errOut    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "cookies.txt")
	if err := os.WriteFile(storePath, []byte(netscapeFixture), 0600); err != nil {
		t.Fatal(err)
	}

	origManager, origStore := newManager, newSelectionStore
	t.Cleanup(func() {
		newManager, newSelectionStore = origManager, origStore
	})
	newManager = func(l logger.Logger) *cookies.Manager {
		return cookies.NewManager([]cookies.BrowserManager{
			cookies.NewSingleStoreManager("Exported", cookies.EngineNetscape, cookies.LevelDerivative,
				[]string{filepath.Join(dir, "missing", "*.txt")}, cookies.WithLogger(l)),
			cookies.NewSingleStoreManager("Curl", cookies.EngineNetscape, cookies.LevelWellKnown,
				[]string{filepath.Join(dir, "*.txt")}, cookies.WithLogger(l)),
		}, cookies.WithManagerLogger(l))
	}
	selDir := filepath.Join(dir, "config")
	newSelectionStore = func() selection.Store {
		return selection.NewFileStore(selDir)
	}
	return &testEnv{dir: dir, storePath: storePath, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
}

func (e *testEnv) run(args ...string) error {
	e.out.Reset()
	e.errOut.Reset()
	app := newApp(BuildArgs{Version: "1.0.0", BuildType: "test"})
	app.Writer = e.out
	app.ErrWriter = e.errOut
	return app.Run(append([]string{"cookiegetter"}, args...))
}

func TestList(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("list"); err != nil {
		t.Fatalf("list: %v (stderr %q)", err, env.errOut)
	}
	out := env.out.String()
	curl := strings.Index(out, "Curl")
	exported := strings.Index(out, "Exported")
	if curl < 0 || exported < 0 {
		t.Fatalf("expected both stores listed, got:\n%s", out)
	}
	if curl > exported {
		t.Errorf("well-known store should be listed before derivative store:\n%s", out)
	}
	if !strings.Contains(out, "missing") || !strings.Contains(out, "found") {
		t.Errorf("expected status column, got:\n%s", out)
	}
}

func TestList_AvailableOnly(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("list", "--available", "--paths"); err != nil {
		t.Fatalf("list: %v", err)
	}
	out := env.out.String()
	if strings.Contains(out, "Exported") {
		t.Errorf("missing store should be hidden:\n%s", out)
	}
	if !strings.Contains(out, env.storePath) {
		t.Errorf("expected store path in output:\n%s", out)
	}
}

func TestGet_HeaderSkipsSecureCookiesOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("get", "http://www.example.com/"); err != nil {
		t.Fatalf("get: %v (stderr %q)", err, env.errOut)
	}
	if got := strings.TrimSpace(env.out.String()); got != "sid=abc123" {
		t.Fatalf("header = %q, want %q", got, "sid=abc123")
	}
}

func TestGet_BareHostDefaultsToHTTPS(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("get", "example.com"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(env.out.String()); got != "sid=abc123; theme=dark" {
		t.Fatalf("header = %q", got)
	}
}

func TestGet_JSONWithBrowserFilter(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("get", "-o", "json", "-b", "curl", "https://example.com/"); err != nil {
		t.Fatalf("get: %v (stderr %q)", err, env.errOut)
	}
	out := env.out.String()
	if !strings.Contains(out, `"name": "sid"`) || !strings.Contains(out, `"http_only": false`) {
		t.Fatalf("unexpected json output:\n%s", out)
	}
	if strings.Contains(out, `"name": "x"`) {
		t.Fatalf("cookie for another site leaked:\n%s", out)
	}
}

func TestGet_NoMatchingBrowser(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("get", "-b", "Opera", "https://example.com/"); err == nil {
		t.Fatal("expected failure when no store matches")
	}
	if !strings.Contains(env.errOut.String(), "get[import]") {
		t.Fatalf("expected runtime error, got %q", env.errOut)
	}
}

func TestGet_File(t *testing.T) {
	env := newTestEnv(t)
	newManager = func(logger.Logger) *cookies.Manager {
		t.Fatal("--file must not search browsers")
		return nil
	}
	if err := env.run("get", "-f", env.storePath, "-o", "netscape", "https://other.org/"); err != nil {
		t.Fatalf("get: %v (stderr %q)", err, env.errOut)
	}
	out := env.out.String()
	if !strings.HasPrefix(out, "# Netscape HTTP Cookie File\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, ".other.org\tTRUE\t/\tFALSE\t0\tx\ty") {
		t.Fatalf("missing cookie line:\n%s", out)
	}
}

func TestGet_BadFormat(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("get", "-o", "yaml", "https://example.com/"); err != nil {
		t.Fatalf("usage errors are reported, not returned: %v", err)
	}
	if !strings.Contains(env.errOut.String(), `unknown output format "yaml"`) {
		t.Fatalf("expected format error, got %q", env.errOut)
	}
}

func TestExport_ToFile(t *testing.T) {
	env := newTestEnv(t)
	dest := filepath.Join(env.dir, "out.txt")
	if err := env.run("export", "-O", dest, "https://example.com/"); err != nil {
		t.Fatalf("export: %v (stderr %q)", err, env.errOut)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\tsid\tabc123") {
		t.Fatalf("exported file missing cookie:\n%s", data)
	}
	if !strings.Contains(env.out.String(), "exported 2 cookies") {
		t.Fatalf("unexpected summary: %q", env.out)
	}
}

func TestSelect_ByNumberThenGetSelected(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("select", "1"); err != nil {
		t.Fatalf("select: %v (stderr %q)", err, env.errOut)
	}
	if !strings.Contains(env.out.String(), "Curl") {
		t.Fatalf("expected Curl to be selected: %q", env.out)
	}

	if err := env.run("select", "--show"); err != nil {
		t.Fatalf("select --show: %v", err)
	}
	if !strings.Contains(env.out.String(), env.storePath) {
		t.Fatalf("expected stored path, got %q", env.out)
	}

	if err := env.run("get", "--selected", "https://example.com/"); err != nil {
		t.Fatalf("get --selected: %v (stderr %q)", err, env.errOut)
	}
	if got := strings.TrimSpace(env.out.String()); got != "sid=abc123; theme=dark" {
		t.Fatalf("header = %q", got)
	}

	if err := env.run("select", "--clear"); err != nil {
		t.Fatalf("select --clear: %v", err)
	}
	if err := env.run("select", "--show"); err != nil {
		t.Fatalf("select --show: %v", err)
	}
	if !strings.Contains(env.out.String(), "no cookie store selected") {
		t.Fatalf("expected empty selection, got %q", env.out)
	}
}

func TestSelect_FileIsResolvedDirectly(t *testing.T) {
	env := newTestEnv(t)
	copyPath := filepath.Join(env.dir, "elsewhere.cookies")
	if err := os.WriteFile(copyPath, []byte(netscapeFixture), 0600); err != nil {
		t.Fatal(err)
	}
	if err := env.run("select", "-f", copyPath); err != nil {
		t.Fatalf("select -f: %v (stderr %q)", err, env.errOut)
	}
	conf, err := newSelectionStore().Load()
	if err != nil {
		t.Fatal(err)
	}
	if !conf.IsCustomized || conf.EngineID != cookies.EngineNetscape {
		t.Fatalf("unexpected selection %+v", conf)
	}

	if err := env.run("get", "-s", "https://other.org/"); err != nil {
		t.Fatalf("get -s: %v (stderr %q)", err, env.errOut)
	}
	if got := strings.TrimSpace(env.out.String()); got != "x=y" {
		t.Fatalf("header = %q", got)
	}
}

func TestSelect_OutOfRange(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("select", "9"); err != nil {
		t.Fatalf("usage errors are reported, not returned: %v", err)
	}
	if !strings.Contains(env.errOut.String(), "out of range") {
		t.Fatalf("expected range error, got %q", env.errOut)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"https://example.com/a", "https://example.com/a", false},
		{"example.com/a", "https://example.com/a", false},
		{"http://", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		u, err := parseTarget(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTarget(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && u.String() != tt.want {
			t.Errorf("parseTarget(%q) = %q, want %q", tt.raw, u, tt.want)
		}
	}
}

func TestStoreFilter(t *testing.T) {
	if storeFilter("", "", "") != nil {
		t.Fatal("empty criteria should yield a nil filter")
	}
	f := storeFilter("firefox", "", "gecko")
	if !f(cookies.NewBrowserConfig("Firefox", "default", "", cookies.EngineGecko)) {
		t.Error("expected case-insensitive match")
	}
	if f(cookies.NewBrowserConfig("Firefox", "default", "", cookies.EngineBlink)) {
		t.Error("engine mismatch should be rejected")
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(env.out.String(), "cookiegetter 1.0.0-test") {
		t.Fatalf("unexpected version output: %q", env.out)
	}
}

func TestNewLogger_Debug(t *testing.T) {
	t.Setenv("COOKIEGETTER_DEBUG", "1")
	logPath := filepath.Join(t.TempDir(), "cg.log")
	t.Setenv("COOKIEGETTER_LOG_FILE", logPath)
	env := newTestEnv(t)
	if err := env.run("get", "https://example.com/"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(env.errOut.String(), "[INFO] get: imported 2 cookies") {
		t.Fatalf("expected debug log on stderr, got %q", env.errOut)
	}
	if strings.Contains(env.errOut.String(), "abc123") {
		t.Fatal("cookie value leaked into logs")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] get: imported 2 cookies") {
		t.Errorf("log file lacks the command tag: %q", data)
	}
}
