package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.zlang.sh/pkg/testutil"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")
	var sb strings.Builder
	SetOutput(&sb)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Printf("out%s", "put")
	if !strings.HasPrefix(sb.String(), "foo ") || !strings.HasSuffix(sb.String(), "output\n") {
		t.Errorf("got log %q", sb.String())
	}

	// Loggers created after SetOutput use the new output too.
	sb.Reset()
	GetLogger("bar ").Print("x")
	if !strings.HasPrefix(sb.String(), "bar ") {
		t.Errorf("got log %q", sb.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	logger := GetLogger("file ")
	fname := filepath.Join(testutil.TempDir(t), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Print("to file")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	logger.Print("discarded")

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "file ") || !strings.Contains(string(content), "to file") {
		t.Errorf("log file has %q", content)
	}
	if strings.Contains(string(content), "discarded") {
		t.Errorf("log file has output written after SetOutputFile(\"\")")
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	dir := testutil.TempDir(t)
	if err := SetOutputFile(filepath.Join(dir, "no", "such", "dir")); err == nil {
		t.Errorf("SetOutputFile in missing directory returns no error")
	}
}
