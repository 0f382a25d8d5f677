package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const letter = "जिल्हाधिकारी कार्यालय, पुणे\nदिनांक: 15/03/2024\nविषय: रस्ता दुरुस्ती बाबत तक्रार\nमोबाईल: 9876543210"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtract_FromStdin(t *testing.T) {
	out, err := execute(t, letter, "--today", "2026-10-17")
	require.NoError(t, err)

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "15/03/2024", rec["letterDate"])
	assert.Equal(t, "9876543210", rec["mobileNumber"])
	assert.Equal(t, "तक्रार", rec["letterType"])
	assert.Equal(t, "pending", rec["letterStatus"])
}

func TestExtract_YearWindowFromFlag(t *testing.T) {
	out, err := execute(t, letter, "--today", "2040-01-01", "--year-window", "1")
	require.NoError(t, err)

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Empty(t, rec["letterDate"])
}

func TestExtract_FileAndTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.txt")
	require.NoError(t, os.WriteFile(path, []byte(letter), 0o644))

	out, err := execute(t, "", path, "--table", "--today", "2026-10-17")
	require.NoError(t, err)
	assert.Contains(t, out, "letterDate")
	assert.Contains(t, out, "15/03/2024")
}

func TestExtract_BadToday(t *testing.T) {
	_, err := execute(t, letter, "--today", "17/10/2026")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, letter, "--today", "2026-10-17")
	require.NoError(t, err)

	res, err := execute(t, out, "validate")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", res)

	_, err = execute(t, `{"letterType": 3}`, "validate")
	assert.Error(t, err)
}
