package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/lnstrip/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestPrintTruncateSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, model.Summary{
		Operation: model.OpTruncate,
		Range:     model.LineRange{Start: 1783, End: 2000},
		Original:  2000,
		Result:    1782,
	})

	want := "✅ Cleaned! Removed lines 1783-2000\n" +
		"   Original: 2000 lines\n" +
		"   Cleaned: 1782 lines\n" +
		"   Removed: 218 lines\n"
	assert.Equal(t, want, buf.String())
}

func TestTruncateNothingRemoved(t *testing.T) {
	s := model.Summary{
		Operation: model.OpTruncate,
		Range:     model.LineRange{Start: 1783, End: 10},
		Original:  10,
		Result:    10,
	}
	assert.Equal(t, "✅ Cleaned! Nothing past line 1782 to remove", Headline(s))
}

func TestPrintExcision(t *testing.T) {
	s := model.Summary{
		Operation: model.OpExcise,
		Range:     model.LineRange{Start: 3, End: 5},
		Original:  8,
		Result:    5,
		Removed: []model.RemovedLine{
			{Number: 3, Text: "  const body = {\n"},
			{Number: 4, Text: "    instruction,  \r\n"},
			{Number: 5, Text: "  };\n"},
		},
	}

	var buf bytes.Buffer
	PrintAudit(&buf, s)
	PrintSummary(&buf, s)

	want := "Lines to DELETE (3-5):\n" +
		"3:   const body = {\n" +
		"4:     instruction,\n" +
		"5:   };\n" +
		"\n" +
		"✅ File fixed! Lines 3-5 have been deleted.\n" +
		"Old line count: 8\n" +
		"New line count: 5\n"
	assert.Equal(t, want, buf.String())
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "✅ Done.", Headline(model.Summary{}))
	assert.Equal(t, "(dry run) File fixed! Lines 646-653 have been deleted.", Headline(model.Summary{
		Operation: model.OpExcise,
		Range:     model.LineRange{Start: 646, End: 653},
		DryRun:    true,
	}))
	assert.Equal(t, "4: x", AuditLine(model.RemovedLine{Number: 4, Text: "x \n"}))
}
