package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mailsift/internal/adapters/api"
	"github.com/mikey/mailsift/internal/config"
)

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd(NewApp(io.Discard))

	assert.Equal(t, "mailsift", root.Name())
	assert.True(t, root.SilenceUsage)

	for _, name := range []string{"enrich", "analyze", "setup", "version"} {
		findCommand(t, root, name)
	}

	for _, flag := range []string{"config", "verbose", "json-log"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "persistent flag %q", flag)
	}
}

func TestReportErrorExitCodes(t *testing.T) {
	app := NewApp(io.Discard)
	app.stderr = io.Discard
	app.logger = zap.NewNop()

	assert.Equal(t, ExitCodeAPIKeyMissing, app.reportError(config.ErrAPIKeyNotFound))
	assert.Equal(t, ExitCodeError, app.reportError(&api.Error{StatusCode: 400, Detail: "bad file"}))
	assert.Equal(t, ExitCodeError, app.reportError(errors.New("something else")))
}

func TestFlagParseErrorIsReported(t *testing.T) {
	app := NewApp(io.Discard)
	var stderr bytes.Buffer
	app.stderr = &stderr

	root := newRootCmd(app)
	root.SetArgs([]string{"enrich", "--bogus"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.Execute()
	require.Error(t, err)

	// Parsing failed before the container was built, so the error must
	// still reach the user.
	assert.Equal(t, ExitCodeError, app.reportError(err))
	assert.Contains(t, stderr.String(), "unknown flag")
	assert.Contains(t, stderr.String(), "bogus")
}

func TestMissingAPIKeyMessageMentionsRemedies(t *testing.T) {
	app := NewApp(io.Discard)
	var stderr bytes.Buffer
	app.stderr = &stderr

	assert.Equal(t, ExitCodeAPIKeyMissing, app.reportError(config.ErrAPIKeyNotFound))
	assert.Contains(t, stderr.String(), "API key not found")
	assert.Contains(t, stderr.String(), "MAILSIFT_API_KEY")
	assert.Contains(t, stderr.String(), "mailsift setup")
}
