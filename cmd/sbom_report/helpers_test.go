package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleSBOM = `{
	"spdxVersion": "SPDX-2.3",
	"SPDXID": "SPDXRef-DOCUMENT",
	"name": "cli-sample",
	"creationInfo": {"created": "2024-02-03T04:05:06Z", "creators": ["Tool: sbom_report"]},
	"packages": [
		{"SPDXID": "SPDXRef-Package-zlib", "name": "zlib", "versionInfo": "1.3.1", "licenseConcluded": "Zlib"},
		{"SPDXID": "SPDXRef-Package-curl", "name": "curl", "versionInfo": "8.5.0"}
	],
	"relationships": [
		{"spdxElementId": "SPDXRef-Package-curl", "relationshipType": "DEPENDS_ON", "relatedSpdxElement": "SPDXRef-Package-zlib"}
	]
}`

// resetFlags restores every flag of every command to its default so that package-level
// flag variables do not leak between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, cmd := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
}

// executeCommand runs the CLI in-process and returns what it wrote to stdout.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if stdin == nil {
		stdin = bytes.NewReader(nil)
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
