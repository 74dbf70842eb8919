package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

const maxTextWidth = 80

func doShow(opt Options, args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	interactive := fs.Bool("i", false, "interactive browser")
	ids := fs.Bool("ids", false, "print short ids")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 {
		opt.UI.Fail("usage: todo show [-i] [--ids]")
		return ExitUsage
	}

	items := load(opt)
	if *interactive {
		return doBrowse(opt, items)
	}
	if len(items) == 0 {
		opt.UI.Info("No todos found.")
		return ExitOK
	}

	th := opt.UI.Theme()
	c := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymOK), c.Completed,
		th.Pending.Render(th.SymPending), c.Pending,
		th.Accent.Render("Total"), c.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, th.Muted.Render(ui.ProgressBar(c.Completed, c.Total, 28)))
	lines = append(lines, "")
	if opt.Group {
		lines = append(lines, groupLines(th, items, *ids)...)
	} else {
		lines = append(lines, flatLines(th, items, *ids)...)
	}
	opt.UI.Panel(lines)
	return ExitOK
}

func doBrowse(opt Options, items []model.Todo) int {
	out, changed, err := opt.Browse(items)
	if err != nil {
		opt.UI.Fail(err.Error())
		return ExitError
	}
	if !changed {
		return ExitOK
	}
	if err := model.Validate(out); err != nil {
		opt.UI.Fail("browse: " + err.Error())
		return ExitError
	}
	if !save(opt, out) {
		return ExitError
	}
	opt.UI.OK("saved")
	return ExitOK
}

// -------------- rendering helpers --------------

func todoLine(th ui.Theme, pos int, t model.Todo, withID bool) string {
	text := t.Text
	if len([]rune(text)) > maxTextWidth {
		text = string([]rune(text)[:maxTextWidth-3]) + "..."
	}
	idx := fmt.Sprintf("%d.", pos)
	if withID {
		idx += " " + th.Muted.Render(model.ShortID(t.ID))
	}
	return fmt.Sprintf("%s %s %s", idx, th.Marker(t.Completed), text)
}

func flatLines(th ui.Theme, items []model.Todo, withID bool) []string {
	out := make([]string, 0, len(items))
	for i, t := range items {
		out = append(out, todoLine(th, i+1, t, withID))
	}
	return out
}

// groupLines keeps each todo's real position so it can still be used as a key.
func groupLines(th ui.Theme, items []model.Todo, withID bool) []string {
	var pend, done []string
	for i, t := range items {
		line := todoLine(th, i+1, t, withID)
		if t.Completed {
			done = append(done, line)
		} else {
			pend = append(pend, line)
		}
	}
	none := th.Muted.Render("(none)")
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, none)
	}
	lines = append(lines, pend...)
	lines = append(lines, "")
	lines = append(lines, th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, none)
	}
	lines = append(lines, done...)
	return lines
}
