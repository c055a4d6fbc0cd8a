package procfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Real-world shape: the command name carries a space and parentheses.
const threadStatFixture = "2180 (JS Helper) S 2078 2166 2166 0 -1 1077936192 1468600 6667190 0 4242 310 106 6477 18537 20 0 13 0 1944 4942053376 180392 18446744073709551615 1 1 0 0 0 0 0 16781312 83128 0 0 0 -1 18 0 0 0 0 0 0 0 0 0 0 0 0 0"

func TestParseThreadStat(t *testing.T) {
	stat, ok := ParseThreadStat(threadStatFixture)
	require.True(t, ok)

	assert.Equal(t, "S", stat.State)
	assert.Equal(t, 2078, stat.ParentPID)
	assert.Equal(t, uint64(310), stat.UTime)
	assert.Equal(t, uint64(106), stat.STime)
	assert.Equal(t, uint64(416), stat.CPUTicks())
	assert.Equal(t, 0, stat.Nice)
	assert.Equal(t, 13, stat.ThreadCount)
}

func TestParseThreadStat_SplitsOnLastParen(t *testing.T) {
	// A command name containing ") " itself must not derail the
	// positional contract.
	line := "42 (evil) name) R 1 42 42 0 -1 0 0 0 0 0 7 3 0 0 20 5 2 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0"
	stat, ok := ParseThreadStat(line)
	require.True(t, ok)
	assert.Equal(t, "R", stat.State)
	assert.Equal(t, 1, stat.ParentPID)
	assert.Equal(t, uint64(10), stat.CPUTicks())
	assert.Equal(t, 5, stat.Nice)
	assert.Equal(t, 2, stat.ThreadCount)
}

func TestParseThreadStat_MalformedNumbersDefaultToZero(t *testing.T) {
	stat, ok := ParseThreadStat("7 (x) S oops 1 1 0 -1 0 0 0 0 0 bad 2 0 0")
	require.True(t, ok)
	assert.Equal(t, 0, stat.ParentPID)
	assert.Zero(t, stat.UTime)
	assert.Equal(t, uint64(2), stat.STime)
}

func TestParseThreadStat_NoParen(t *testing.T) {
	_, ok := ParseThreadStat("not a stat line")
	assert.False(t, ok)
}

func TestParseThreadStatus(t *testing.T) {
	fixture := `Name:	nginx
Umask:	0022
State:	S (sleeping)
Tgid:	1200
VmRSS:	   51200 kB
VmSwap:	    1024 kB
Threads:	4
`
	status := ParseThreadStatus(strings.NewReader(fixture))
	assert.Equal(t, "nginx", status.Name)
	assert.Equal(t, "0022", status.Umask)
	assert.Equal(t, uint64(51200), status.ResidentKB)
	assert.Equal(t, uint64(1024), status.SwappedKB)
}

func TestParseThreadStatus_KernelThreadHasNoVm(t *testing.T) {
	status := ParseThreadStatus(strings.NewReader("Name:\tkswapd0\nUmask:\t0000\n"))
	assert.Equal(t, "kswapd0", status.Name)
	assert.Zero(t, status.ResidentKB)
	assert.Zero(t, status.SwappedKB)
}

func TestFirstCmdline(t *testing.T) {
	assert.Equal(t, "/usr/bin/nginx -g daemon off;",
		FirstCmdline([]byte("/usr/bin/nginx\x00-g\x00daemon off;\x00")))
	assert.Equal(t, "", FirstCmdline(nil))
}
