package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdWritesJSONAndDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("prod", &buf)

	l.Debugf("hidden %d", 1)
	assert.Zero(t, buf.Len())

	l.Infof("workshop %s canceled", "w1")
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "workshop w1 canceled", line["msg"])
}

func TestNew_DevWritesDebugText(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("dev", &buf)

	l.Debugf("code=%s", "123456")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "code=123456")
}
