package procfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const memInfoFixture = `MemTotal:       16384000 kB
MemFree:         2048000 kB
MemAvailable:    8192000 kB
Buffers:          512000 kB
Cached:          4096000 kB
SwapCached:        10240 kB
SwapTotal:       4194304 kB
SwapFree:        4000000 kB
Dirty:               128 kB
`

func TestParseMemInfo(t *testing.T) {
	sample := ParseMemInfo(strings.NewReader(memInfoFixture))

	assert.Equal(t, uint64(16384000), sample.MemTotal)
	assert.Equal(t, uint64(2048000), sample.MemFree)
	assert.Equal(t, uint64(8192000), sample.MemAvailable)
	assert.Equal(t, uint64(4194304), sample.SwapTotal)
	assert.Equal(t, uint64(4000000), sample.SwapFree)
	assert.Equal(t, uint64(10240), sample.SwapCached)
}

func TestParseMemInfo_MissingRowsStayZero(t *testing.T) {
	sample := ParseMemInfo(strings.NewReader("MemTotal: 1024 kB\n"))
	assert.Equal(t, uint64(1024), sample.MemTotal)
	assert.Zero(t, sample.MemAvailable)
	assert.Zero(t, sample.SwapTotal)
}

func TestParseMemInfo_MalformedValueStaysZero(t *testing.T) {
	sample := ParseMemInfo(strings.NewReader("MemTotal: banana kB\nMemFree: 10 kB\n"))
	assert.Zero(t, sample.MemTotal)
	assert.Equal(t, uint64(10), sample.MemFree)
}

func TestReadMemInfo_MissingFile(t *testing.T) {
	_, err := ReadMemInfo("/nonexistent/meminfo")
	assert.Error(t, err)
}
