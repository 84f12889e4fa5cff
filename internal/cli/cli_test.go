package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeKeys(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_Queries(t *testing.T) {
	keys := writeKeys(t, "# words", "app\tApp", "apple\tApple", "applet\tApplet", "apricot\tApricot", "", "abc")

	out, err := run(t, "postfixes", "app", "--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "App\nApple\nApplet\n", out)

	out, err = run(t, "prefixes", "applets", "--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "App\nApple\nApplet\n", out)

	out, err = run(t, "longest", "applesauce", "--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "Apple\n", out)

	out, err = run(t, "get", "abc", "--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "abc\n", out)

	_, err = run(t, "get", "ap", "--keys", keys)
	require.Error(t, err)

	out, err = run(t, "stats", "--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "keys\t5\n", out)
}

func TestCLI_ListWithout(t *testing.T) {
	keys := writeKeys(t, "a", "ab", "b")

	out, err := run(t, "list", "--keys", keys, "--without", "a")
	require.NoError(t, err)
	require.Equal(t, "b\tb\n", out)
}

func TestCLI_Segments(t *testing.T) {
	keys := writeKeys(t, "/usr/local\tlocal", "/usr/local/bin\tbin", "/etc\tetc")

	out, err := run(t, "prefixes", "/usr/local/bin/go", "--keys", keys, "--mode", "segments")
	require.NoError(t, err)
	require.Equal(t, "local\nbin\n", out)
}

func TestCLI_SegmentsListReadsBack(t *testing.T) {
	keys := writeKeys(t, "usr/local\tlocal", "/usr/local/bin\tbin", "etc/\tetc")

	out, err := run(t, "list", "--keys", keys, "--mode", "segments")
	require.NoError(t, err)
	require.Equal(t, "/usr/local\tlocal\n/usr/local/bin\tbin\n/etc\tetc\n", out)

	again := writeKeys(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n")...)
	relisted, err := run(t, "list", "--keys", again, "--mode", "segments")
	require.NoError(t, err)
	require.Equal(t, out, relisted)

	got, err := run(t, "get", "usr/local", "--keys", again, "--mode", "segments")
	require.NoError(t, err)
	require.Equal(t, "local\n", got)
}

func TestCLI_Resolve(t *testing.T) {
	keys := writeKeys(t,
		"http://purl.obolibrary.org/obo/\tobo",
		"http://purl.obolibrary.org/obo/DOID_\tdoid",
	)

	out, err := run(t, "resolve",
		"http://purl.obolibrary.org/obo/DOID_1234",
		"http://purl.obolibrary.org/obo/1234",
		"urn:none",
		"--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "doid:1234\nobo:1234\nurn:none\n", out)
}

func TestCLI_Dump(t *testing.T) {
	keys := writeKeys(t, "ab", "ac")

	out, err := run(t, "dump", "--keys", keys)
	require.NoError(t, err)
	require.Equal(t, "ROOT\n  'a'\n    'b' => ab\n    'c' => ac\n", out)
}

func TestCLI_Errors(t *testing.T) {
	_, err := run(t, "stats")
	require.Error(t, err)

	_, err = run(t, "stats", "--keys", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	keys := writeKeys(t, "a")
	_, err = run(t, "stats", "--keys", keys, "--mode", "words")
	require.Error(t, err)
}

func TestReadEntries(t *testing.T) {
	got := map[string]string{}
	err := readEntries(strings.NewReader("k1\tv1\r\n#skip\n\nk2\n"), func(k, v string) {
		got[k] = v
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"k1": "v1", "k2": "k2"}, got)
}
