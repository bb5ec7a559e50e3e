package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", TruncID("12345678-abcd-efgh"))
	assert.Equal(t, "short", TruncID("short"))
	assert.Equal(t, "", TruncID(""))
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, "0:00:00", Elapsed(0))
	assert.Equal(t, "0:01:05", Elapsed(65))
	assert.Equal(t, "2:30:00", Elapsed(9000))
	assert.Equal(t, "0:00:00", Elapsed(-10))
}

func TestHumanTimestamp(t *testing.T) {
	instant := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-05 08:00:00", HumanTimestamp(instant, nil))

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	assert.Equal(t, "2026-01-05 09:00:00", HumanTimestamp(instant, berlin))
	assert.Equal(t, "09:00:00", HumanClock(instant, berlin))
}

func TestTruncText(t *testing.T) {
	assert.Equal(t, "short", TruncText("short", 40))
	long := strings.Repeat("x", 50)
	got := TruncText(long, 40)
	assert.Len(t, got, 40)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"a1", "development"},
		{"b2", "ops"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "development")
	assert.Contains(t, lines[2], "ops")
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}
