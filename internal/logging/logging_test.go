package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"INFO":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
	}
	for in, want := range cases {
		require.NoError(t, SetLogLevel(in))
		assert.Equal(t, want, Log.GetLevel(), in)
	}

	assert.Error(t, SetLogLevel("verbose"))
}

func TestSetFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		_ = SetFormat("text")
		SetOutput(logrus.StandardLogger().Out)
	}()

	require.NoError(t, SetFormat("json"))
	Log.WithField("calculation_id", "abc").Info("calculated")

	out := buf.String()
	assert.True(t, strings.Contains(out, `"calculation_id":"abc"`), out)
	assert.True(t, strings.Contains(out, `"msg":"calculated"`), out)

	assert.Error(t, SetFormat("xml"))
}
