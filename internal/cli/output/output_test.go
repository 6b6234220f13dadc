package output

import (
	"bytes"
	"strings"
	"testing"

	"ap-merch-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Plain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Success("published %s", "drop")
	p.Info("hello")
	p.Warning("careful")
	p.Notice(domain.Notice{Level: domain.NoticeError, Message: "boom"})

	assert.Equal(t, "[OK] published drop\nhello\n", out.String())
	assert.Equal(t, "[WARN] careful\n[ERROR] boom\n", errOut.String())
}

func TestResolveColors(t *testing.T) {
	assert.False(t, ResolveColors(true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(false))
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, []string{"rank", "niche", "score"})
	tbl.AddRow("1", "cat mugs", "10.00")
	tbl.AddRow("2", "dog shirts", "5.00")
	require.NoError(t, tbl.Render())

	out := buf.String()
	assert.Contains(t, out, "cat mugs")
	assert.Less(t, strings.Index(out, "cat mugs"), strings.Index(out, "dog shirts"))
}
