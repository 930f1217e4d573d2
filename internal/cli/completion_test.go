package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_Shells(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "__start_suiwallet"},
		{"zsh", "#compdef suiwallet"},
		{"fish", "complete -c suiwallet"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tc := range tests {
		t.Run(tc.shell, func(t *testing.T) {
			buf := new(bytes.Buffer)
			completionCmd.SetOut(buf)
			t.Cleanup(func() { completionCmd.SetOut(nil) })

			require.NoError(t, completionCmd.RunE(completionCmd, []string{tc.shell}))
			assert.Contains(t, buf.String(), tc.marker)
		})
	}
}

func TestCompletion_Args(t *testing.T) {
	require.NoError(t, completionCmd.Args(completionCmd, []string{"zsh"}))
	require.Error(t, completionCmd.Args(completionCmd, []string{"tcsh"}))
	require.Error(t, completionCmd.Args(completionCmd, nil))
	require.Error(t, completionCmd.Args(completionCmd, []string{"bash", "zsh"}))
}
