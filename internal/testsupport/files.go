package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleLog is a small summary log, oldest episode first, covering notes,
// markup, a page break suppression and an artwork directive.
const SampleLog = `Show 1000
1/1/2018
Happy New Year
0:00:40 **Shut up slave!** greeting
0:12:00 The "new" year & its ~~~secret~~~ plans
0:45:10 See 999@1:02:03 for background

Show 1001
1/4/2018
Cold Snap
~~~~
!art
0:03:10 Polar vortex *again*
1:20:00 CotD: a 12\' pole and ____
`

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
