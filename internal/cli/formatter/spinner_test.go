package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_WritesMessageAndClearsLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "")
	s.Start()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, "\r\033[K")
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Fetching projects")

	s.Stop()
	assert.Empty(t, buf.String())

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	assert.Contains(t, buf.String(), "Fetching projects")
}
