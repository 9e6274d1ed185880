package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { Setup(false, os.Stderr) })

	var buf bytes.Buffer
	Setup(false, &buf)
	logrus.Debug("hidden")
	logrus.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	Setup(true, &buf)
	logrus.WithField("page", 2).Debug("fetching")
	assert.Contains(t, buf.String(), "fetching")
	assert.Contains(t, buf.String(), "page=2")
}
