package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWithLevel(t *testing.T) {
	var b bytes.Buffer
	l := NewWithLevel(&b, logrus.InfoLevel)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, b.String())

	l.Infof("loaded %s", "tetris")
	assert.Contains(t, b.String(), "level=info")
	assert.Contains(t, b.String(), "msg=loaded tetris")
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	assert.NotPanics(t, func() {
		l.Infof("%d", 1)
		l.Warnf("%d", 1)
		l.Errorf("%d", 1)
		l.Debugf("%d", 1)
	})
}
