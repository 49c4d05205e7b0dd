package buildconfig

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	info := Current()
	assert.Equal(t, Version(), info.Version)
	assert.Equal(t, Commit(), info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
