package cookies

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

// sqliteMagic is the first 16 bytes of any SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// DetectEngine determines which engine can read the cookie store at path:
// EngineGecko (moz_cookies), EngineBlink (cookies), EngineNetscape
// (cookies.txt) or EngineIEFindCache (a directory of cache records).
func DetectEngine(fs afero.Fs, path string) (string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cookie store not found: %s", path)
	}
	if info.IsDir() {
		return EngineIEFindCache, nil
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("cookie store at %s is empty or corrupted", path)
	}

	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open cookie store: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("cannot read cookie store: %w", err)
	}
	head = head[:n]

	if bytes.HasPrefix(head, sqliteMagic) {
		return detectSQLiteEngine(fs, path)
	}

	firstLine := string(head)
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	firstLine = strings.TrimRight(firstLine, "\r")
	if firstLine == netscapeHeader || firstLine == netscapeAltHeader {
		return EngineNetscape, nil
	}

	return "", fmt.Errorf("unsupported cookie store format at %s", path)
}

// detectSQLiteEngine checks a snapshot of the database for a known table.
func detectSQLiteEngine(fs afero.Fs, path string) (string, error) {
	copyPath, cleanup, err := SafeCopy(fs, path)
	if err != nil {
		return "", err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", copyPath))
	if err != nil {
		return "", fmt.Errorf("cannot open SQLite database: %w", err)
	}
	defer db.Close()

	var tableName string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='moz_cookies'`).Scan(&tableName)
	if err == nil {
		return EngineGecko, nil
	}
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='cookies'`).Scan(&tableName)
	if err == nil {
		return EngineBlink, nil
	}

	return "", fmt.Errorf("unsupported cookie database schema at %s", path)
}
