package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is reported by `todo version`.
const Version = "1.1.0"

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// BrowseFunc runs the interactive browser and returns the edited list.
type BrowseFunc func(items []model.Todo) ([]model.Todo, bool, error)

// Options carry the collaborators and root flags for a run.
type Options struct {
	Group  bool // list grouped by pending/done
	Store  *jsonstore.Store
	UI     *ui.Printer
	Log    *log.Logger
	NewID  model.IDFunc
	Browse BrowseFunc
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt = withDefaults(opt)
	if len(args) == 0 {
		PrintHelp(opt.UI.Out())
		return ExitUsage
	}
	cmd, a := args[0], args[1:]
	opt.Log.Debug("command", "name", cmd, "args", len(a))

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.UI.Out())
		return ExitOK

	case "version", "--version":
		opt.UI.Println("todo " + Version)
		return ExitOK

	case "add":
		if len(a) == 0 {
			opt.UI.Fail("usage: todo add <text...>")
			return ExitUsage
		}
		return doAdd(opt, strings.Join(a, " "))

	case "show", "ls":
		return doShow(opt, a)

	case "delete", "rm":
		if len(a) != 1 {
			opt.UI.Fail("usage: todo delete <number|id>")
			return ExitUsage
		}
		return doDelete(opt, a[0])

	case "edit":
		if len(a) < 2 {
			opt.UI.Fail("usage: todo edit <number|id> <new text...>")
			return ExitUsage
		}
		return doEdit(opt, a[0], strings.Join(a[1:], " "))

	case "complete", "done":
		if len(a) != 1 {
			opt.UI.Fail("usage: todo complete <number|id>")
			return ExitUsage
		}
		return doComplete(opt, a[0])

	case "toggle":
		if len(a) != 1 {
			opt.UI.Fail("usage: todo toggle <number|id>")
			return ExitUsage
		}
		return doToggle(opt, a[0])

	case "stats":
		return doStats(opt)

	case "search":
		if len(a) == 0 {
			opt.UI.Fail("usage: todo search <keyword...>")
			return ExitUsage
		}
		return doSearch(opt, strings.Join(a, " "))

	case "clear":
		return doClear(opt)
	}

	opt.UI.Fail("unknown subcommand: " + cmd)
	opt.UI.Hint("run `todo help` for the list of subcommands")
	return ExitUsage
}

func withDefaults(opt Options) Options {
	if opt.UI == nil {
		opt.UI = ui.NewPrinter(nil, nil, "")
	}
	if opt.Log == nil {
		opt.Log = log.New(io.Discard)
	}
	if opt.Store == nil {
		opt.Store = jsonstore.New(jsonstore.DefaultFileName, opt.Log)
	}
	if opt.NewID == nil {
		opt.NewID = model.NewID
	}
	if opt.Browse == nil {
		theme := opt.UI.Theme().Name
		newID := opt.NewID
		opt.Browse = func(items []model.Todo) ([]model.Todo, bool, error) {
			return tui.Run(items, tui.Options{Theme: theme, NewID: newID})
		}
	}
	return opt
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a tiny CLI

Usage:
  todo [-file path] [-theme classic|neon|mono] [-log-level level] [-group] <subcommand> [args]

Subcommands:
  add <text...>              Add a new todo (text can be multiple words)
  show [-i] [--ids]          List todos (alias: ls); -i opens the interactive browser
  delete <number|id>         Remove a todo (alias: rm)
  edit <number|id> <text...> Replace the text of a todo
  complete <number|id>       Mark a todo as completed (alias: done)
  toggle <number|id>         Flip a todo between completed and pending
  stats                      Show completed/pending/total counts
  search <keyword...>        List todos containing keyword (case-insensitive)
  clear                      Remove all todos
  version                    Print the version

Numbers are the positions printed by show. Ids (or a unique prefix of at
least %d characters) are printed by show --ids and never change.

Examples:
  todo add "Buy milk"
  todo show
  todo complete 1
  todo toggle 1
  todo edit 1 "Buy oat milk"
  todo delete 1
`, model.MinPrefixLen)
}

// -------------- subcommand impls ----------------

// load never fails: an unreadable file is reported and treated as empty.
func load(opt Options) []model.Todo {
	items, err := opt.Store.Load()
	if err != nil {
		opt.UI.Warn("Error reading todo file " + opt.Store.Path() + "; treating it as empty")
	}
	return items
}

func save(opt Options, items []model.Todo) bool {
	if err := opt.Store.Save(items); err != nil {
		opt.UI.Fail("save: " + err.Error())
		return false
	}
	return true
}

func reportErr(opt Options, err error) int {
	switch {
	case errors.Is(err, model.ErrAmbiguousKey):
		opt.UI.Fail("Ambiguous todo id: " + keyOf(err))
		opt.UI.Hint("use more characters of the id; run `todo show --ids`")
	case errors.Is(err, model.ErrNotFound):
		opt.UI.Fail("Invalid todo number or id: " + keyOf(err))
		opt.UI.Hint("run `todo show` to see valid numbers")
	case errors.Is(err, model.ErrEmptyText):
		opt.UI.Fail(err.Error())
	default:
		opt.UI.Fail(err.Error())
		return ExitError
	}
	return ExitUsage
}

func keyOf(err error) string {
	var ke *model.KeyError
	if errors.As(err, &ke) {
		return ke.Key
	}
	return ""
}

func doAdd(opt Options, text string) int {
	items := load(opt)
	items, added, err := model.Add(items, text, opt.NewID)
	if err != nil {
		return reportErr(opt, err)
	}
	if !save(opt, items) {
		return ExitError
	}
	opt.UI.OK("Todo added: " + added.Text)
	return ExitOK
}

func doDelete(opt Options, key string) int {
	items, removed, err := model.Delete(load(opt), key)
	if err != nil {
		return reportErr(opt, err)
	}
	if !save(opt, items) {
		return ExitError
	}
	opt.UI.OK("Deleted: " + removed.Text)
	return ExitOK
}

func doEdit(opt Options, key, text string) int {
	items, _, err := model.Edit(load(opt), key, text)
	if err != nil {
		return reportErr(opt, err)
	}
	if !save(opt, items) {
		return ExitError
	}
	opt.UI.OK(fmt.Sprintf("Todo #%s updated", key))
	return ExitOK
}

func doComplete(opt Options, key string) int {
	items, _, err := model.SetCompleted(load(opt), key, true)
	if err != nil {
		return reportErr(opt, err)
	}
	if !save(opt, items) {
		return ExitError
	}
	opt.UI.OK(fmt.Sprintf("Todo #%s marked as completed", key))
	return ExitOK
}

func doToggle(opt Options, key string) int {
	items, t, err := model.Toggle(load(opt), key)
	if err != nil {
		return reportErr(opt, err)
	}
	if !save(opt, items) {
		return ExitError
	}
	status := "pending"
	if t.Completed {
		status = "completed"
	}
	opt.UI.OK(fmt.Sprintf("Todo #%s marked as %s", key, status))
	return ExitOK
}

func doStats(opt Options) int {
	c := model.Stats(load(opt))
	th := opt.UI.Theme()
	opt.UI.Println(th.Accent.Render("Todo Stats"))
	opt.UI.Println(th.Success.Render(fmt.Sprintf("%s Completed: %d", th.SymOK, c.Completed)))
	opt.UI.Println(th.Error.Render(fmt.Sprintf("%s Pending: %d", th.SymPending, c.Pending)))
	opt.UI.Println(fmt.Sprintf("Total: %d", c.Total))
	return ExitOK
}

func doSearch(opt Options, keyword string) int {
	matches := model.Search(load(opt), keyword)
	if len(matches) == 0 {
		opt.UI.Info(fmt.Sprintf("No todos found for %q", keyword))
		return ExitOK
	}
	for _, m := range matches {
		opt.UI.Println(todoLine(opt.UI.Theme(), m.Position, m.Todo, false))
	}
	return ExitOK
}

func doClear(opt Options) int {
	if err := opt.Store.Clear(); err != nil {
		opt.UI.Fail("clear: " + err.Error())
		return ExitError
	}
	opt.UI.OK("Todos cleared successfully")
	return ExitOK
}
