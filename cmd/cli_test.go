package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestVariantsListShowsBuiltInsFromEnvironment(t *testing.T) {
	t.Setenv("CLOUDAHK_URL", "https://stable.cloudahk.example")

	stdout, _, err := executeCLI(t, t.TempDir(), "variants", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "variants: 4")
	assert.Contains(t, stdout, "https://stable.cloudahk.example")
	assert.Contains(t, stdout, "[unconfigured]")
}

func TestVariantsAddListRemove(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"variants", "add",
		"--name", "canary",
		"--url", "https://canary.cloudahk.example",
		"--user", "bot",
		"--password", "hunter2",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "variants", "list", "--json")
	require.NoError(t, err)

	var views []variantView
	require.NoError(t, json.Unmarshal([]byte(stdout), &views))
	names := make([]string, 0, len(views))
	for _, view := range views {
		names = append(names, string(view.Name))
	}
	assert.Contains(t, names, "canary")

	secret, err := os.ReadFile(filepath.Join(home, ".cloudahk", "secrets", "cloudahk", "variants", "canary", "password"))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", strings.TrimSpace(string(secret)))

	_, _, err = executeCLI(t, home, "variants", "rm", "canary")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "variants", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "canary")
}

func TestVariantsAddRequiresURL(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "variants", "add", "--name", "canary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"url\" not set")
}

func TestSecretSetRequiresValue(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "secret", "set", "--ref", "CLOUDAHK_PASS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"value\" not set")
}

func TestRunPrintsInlineResult(t *testing.T) {
	server := newBackendServer(t, `{"stdout":"hello from cloudahk","time":0.3}`)
	defer server.Close()
	t.Setenv("CLOUDAHK_URL", server.URL)

	stdout, _, err := executeCLI(t, t.TempDir(), "run", "MsgBox", "hello")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Language: `ahk`")
	assert.Contains(t, stdout, "hello from cloudahk")
	assert.Contains(t, stdout, "Processing time: 0.3 seconds")
	assert.Contains(t, stdout, "CloudAHK Backend Variant: `stable`")
}

func TestRunWritesLargeOutputAttachment(t *testing.T) {
	large := strings.Repeat("line\n", 40)
	payload, err := json.Marshal(map[string]any{"stdout": large, "time": 1.0})
	require.NoError(t, err)

	server := newBackendServer(t, string(payload))
	defer server.Close()
	t.Setenv("CLOUDAHK_URL", server.URL)

	outDir := t.TempDir()
	stdout, _, err := executeCLI(t, t.TempDir(), "run", "--out", outDir, "Loop 40")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Results too large. See attached file(s).")

	written, err := os.ReadFile(filepath.Join(outDir, "results.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(large), string(written))
}

func TestRunRequiresCode(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run")
	require.ErrorIs(t, err, errMissingCode)
}

func TestRunUnknownVariant(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--variant", "nope", "MsgBox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend variant")
}

func TestRunReportsBackendStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()
	t.Setenv("CLOUDAHK_URL", server.URL)

	_, _, err := executeCLI(t, t.TempDir(), "run", "MsgBox")
	require.Error(t, err)
	assert.Equal(t, "502. Something went wrong.", err.Error())
}

func TestStressRejectsCountAboveLimit(t *testing.T) {
	server := newBackendServer(t, `{"stdout":"x","time":0.1}`)
	defer server.Close()
	t.Setenv("CLOUDAHK_URL", server.URL)

	_, _, err := executeCLI(t, t.TempDir(), "stress", "-n", "11", "MsgBox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repetition count 11 is above the limit of 10")
}

func TestStressRunsEveryRepetition(t *testing.T) {
	server := newBackendServer(t, `{"stdout":"tick","time":0.1}`)
	defer server.Close()
	t.Setenv("CLOUDAHK_URL", server.URL)

	stdout, _, err := executeCLI(t, t.TempDir(), "stress", "-n", "3", "MsgBox")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(stdout, "CloudAHK Backend Variant: `stable`"))
}

func TestServeAnswersJSONLineCommands(t *testing.T) {
	server := newBackendServer(t, `{"stdout":"served","time":0.1}`)
	defer server.Close()
	t.Setenv("CLOUDAHK_URL", server.URL)

	input := strings.Join([]string{
		`{"id":"m-1","channel_id":"c-1","author_id":"u-1","content":"=ahk MsgBox"}`,
		`{"id":"m-2","channel_id":"c-2","author_id":"u-2","content":"=variants"}`,
		`not json`,
	}, "\n")

	stdout, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader(input), "serve")
	require.NoError(t, err)

	replies := map[string]map[string]any{}
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		var reply map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &reply))
		replies[fmt.Sprint(reply["reference_id"])] = reply
	}

	require.Len(t, replies, 2)
	assert.Contains(t, replies["m-1"]["content"], "<@u-1>")
	assert.Contains(t, replies["m-1"]["content"], "served")
	assert.Equal(t, "Backend variants: `stable`", replies["m-2"]["content"])
}

func TestReplEvaluatesAndKeepsBindings(t *testing.T) {
	input := "`var x = 40`\n`x + 2`\nexit\n"

	stdout, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader(input), "repl")
	require.NoError(t, err)
	assert.Contains(t, stdout, "42")
	assert.Contains(t, stdout, "Exiting.")
}

func newBackendServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ahk/run", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, body)
	}))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, strings.NewReader(""), args...)
}

func executeCLIWithInput(t *testing.T, home string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("PASSWORD_STORE_DIR", filepath.Join(home, "no-pass-store"))
	t.Setenv("CLOUDAHK_LOG_LEVEL", "error")
	for _, key := range []string{"CLOUDAHK_URL_BETA", "CLOUDAHK_URL_DEV", "SNEKBOX_URL_DEV"} {
		t.Setenv(key, "")
	}

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
