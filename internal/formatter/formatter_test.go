package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/mailsift/internal/core"
)

func sampleResult() core.Result {
	return core.Result{
		"message_id": "abc-123",
		"flagged":    true,
		"score":      0.92,
		"headers": map[string]interface{}{
			"from": "alice@example.com",
			"to":   []interface{}{"bob@example.com"},
		},
	}
}

func TestForFormat(t *testing.T) {
	f, err := ForFormat("json")
	require.NoError(t, err)
	assert.IsType(t, JSONFormatter{}, f)

	f, err = ForFormat("txt")
	require.NoError(t, err)
	assert.IsType(t, TextFormatter{}, f)

	_, err = ForFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	result := sampleResult()

	out, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)

	var parsed core.Result
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, result, parsed)
}

func TestFormattersStripTrailingNewlines(t *testing.T) {
	for _, name := range []string{"json", "txt"} {
		f, err := ForFormat(name)
		require.NoError(t, err)

		out, err := f.Format(sampleResult())
		require.NoError(t, err)
		assert.False(t, strings.HasSuffix(out, "\n"), "%s output ends in newline", name)
		assert.NotEmpty(t, out)
	}
}

func TestTextFormatterRendersFields(t *testing.T) {
	out, err := TextFormatter{}.Format(core.Result{"verdict": "malicious"})
	require.NoError(t, err)
	assert.Contains(t, out, "verdict")
	assert.Contains(t, out, "malicious")
}
