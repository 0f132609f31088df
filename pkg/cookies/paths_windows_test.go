//go:build windows

package cookies

import (
	"path/filepath"
	"testing"
)

const (
	testLocalAppData = `C:\Users\user\AppData\Local`
	testAppData      = `C:\Users\user\AppData\Roaming`
)

func TestGetBrowserSpecsForEnv(t *testing.T) {
	specs := getBrowserSpecsForEnv(testLocalAppData, testAppData)
	want := map[string]string{
		"Firefox":        filepath.Join(testAppData, "Mozilla", "Firefox"),
		"LibreWolf":      filepath.Join(testAppData, "LibreWolf"),
		"Google Chrome":  filepath.Join(testLocalAppData, "Google", "Chrome", "User Data"),
		"Microsoft Edge": filepath.Join(testLocalAppData, "Microsoft", "Edge", "User Data"),
	}
	found := 0
	for _, s := range specs {
		if folder, ok := want[s.Name]; ok {
			found++
			if s.DataFolder != folder {
				t.Errorf("%s data folder: want %q, got %q", s.Name, folder, s.DataFolder)
			}
		}
	}
	if found != len(want) {
		t.Errorf("found %d of %d browsers", found, len(want))
	}
}

func TestIECacheDirForEnv_FallsBackToLegacy(t *testing.T) {
	local := t.TempDir()
	got := ieCacheDirForEnv(local, testAppData)
	if want := filepath.Join(testAppData, "Microsoft", "Windows", "Cookies"); got != want {
		t.Errorf("cache dir = %q, want %q", got, want)
	}
}

func TestDefaultManagers_Windows(t *testing.T) {
	t.Setenv("LOCALAPPDATA", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	managers := DefaultManagers()
	if _, ok := managers[0].(*IEBrowserManager); !ok {
		t.Fatalf("first manager = %T, want *IEBrowserManager", managers[0])
	}
	singles := 0
	for _, m := range managers {
		if _, ok := m.(*SingleStoreManager); ok {
			singles++
		}
	}
	if singles != 2 {
		t.Errorf("got %d single-store managers, want 2", singles)
	}

	imp := NewDefaultManager().DefaultImporter()
	if imp == nil || imp.Config().EngineID != EngineIE || !imp.IsAvailable() {
		t.Fatalf("default importer = %v", imp)
	}
}
