package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected logrus.Level
	}{
		{name: "empty defaults to warn", input: "", expected: logrus.WarnLevel},
		{name: "debug", input: "debug", expected: logrus.DebugLevel},
		{name: "upper case", input: "INFO", expected: logrus.InfoLevel},
		{name: "invalid keeps warn", input: "loud", expected: logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetOutput(&bytes.Buffer{})
			configureLogLevel(tt.input)
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	configureFormatter("json")
	SetLevel(logrus.InfoLevel)
	defer configureFormatter("")

	WarnWithFields("droplet created", map[string]interface{}{"droplet_id": 42})

	assert.Contains(t, buf.String(), `"droplet_id":42`)
	assert.Contains(t, buf.String(), `"msg":"droplet created"`)
}
