package ui

import (
	"testing"

	"github.com/atomicstack/verbs/internal/dispatch"
	"github.com/atomicstack/verbs/internal/format/table"
	"github.com/atomicstack/verbs/internal/testutil"
	"github.com/atomicstack/verbs/internal/theme"
)

func TestRenderFrameGolden(t *testing.T) {
	lines := table.Format([][]string{
		{"Go to parent dir", "[u]"},
		{"Quit", "[q]"},
		{"Find git files", "[f]"},
		{"Run `lazygit`", "[g]"},
		{"Show git diff", "[d]"},
	}, []table.Alignment{table.AlignLeft, table.AlignRight})
	frame := dispatch.Frame{
		Header: "/home/me/src/verbs",
		Lines:  lines,
		Cursor: 2,
		Status: "lazygit: exit status 1",
	}
	testutil.AssertGolden(t, "frame_repo_root.golden", renderFrame(frame, theme.Plain(), 60, 20))
}
