package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

type harness struct {
	t     *testing.T
	path  string
	store *jsonstore.Store
	out   bytes.Buffer
	err   bytes.Buffer
	group bool
	seq   int

	browse BrowseFunc
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	return &harness{t: t, path: path, store: jsonstore.New(path, nil)}
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(args, Options{
		Group: h.group,
		Store: h.store,
		UI:    ui.NewPrinter(&h.out, &h.err, "mono"),
		NewID: func() string {
			h.seq++
			return fmt.Sprintf("%08d-id", h.seq)
		},
		Browse: h.browse,
	})
}

func (h *harness) items() []model.Todo {
	h.t.Helper()
	items, err := h.store.Load()
	require.NoError(h.t, err)
	return items
}

func (h *harness) seed(texts ...string) {
	h.t.Helper()
	for _, s := range texts {
		require.Equal(h.t, ExitOK, h.run("add", s))
	}
}

func TestAddShowCompleteStats(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, ExitOK, h.run("add", "Buy", "milk"))
	assert.Equal(t, "ok Todo added: Buy milk\n", h.out.String())
	items := h.items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.False(t, items[0].Completed)

	assert.Equal(t, ExitOK, h.run("show"))
	assert.Contains(t, h.out.String(), "1. [ ] Buy milk")
	assert.Contains(t, h.out.String(), "Total 1")

	assert.Equal(t, ExitOK, h.run("complete", "1"))
	assert.Equal(t, "ok Todo #1 marked as completed\n", h.out.String())

	assert.Equal(t, ExitOK, h.run("stats"))
	assert.Equal(t, "Todo Stats\nok Completed: 1\n- Pending: 0\nTotal: 1\n", h.out.String())
}

func TestShow_Empty(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitOK, h.run("ls"))
	assert.Equal(t, "No todos found.\n", h.out.String())
	assert.FileExists(t, h.path)
}

func TestShow_IDsAndGroup(t *testing.T) {
	h := newHarness(t)
	h.seed("alpha", "beta")
	require.Equal(t, ExitOK, h.run("done", "2"))

	require.Equal(t, ExitOK, h.run("show", "--ids"))
	id := model.ShortID(h.items()[0].ID)
	assert.Contains(t, h.out.String(), "1. "+id+" [ ] alpha")

	h.group = true
	require.Equal(t, ExitOK, h.run("show"))
	out := h.out.String()
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "2. [x] beta", "grouped view keeps real positions")

	assert.Equal(t, ExitUsage, h.run("show", "extra"))
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.seed("alpha", "beta", "gamma")
	beta := h.items()[1]

	assert.Equal(t, ExitOK, h.run("rm", "2"))
	assert.Equal(t, "ok Deleted: beta\n", h.out.String())
	items := h.items()
	require.Len(t, items, 2)
	for _, it := range items {
		assert.NotEqual(t, beta.ID, it.ID)
	}

	// ids survive deletions; gamma is now position 2 but keeps its id
	assert.Equal(t, ExitOK, h.run("delete", items[1].ID))
	assert.Len(t, h.items(), 1)
}

func TestInvalidKeyDoesNotMutate(t *testing.T) {
	h := newHarness(t)
	h.seed("alpha")
	before, err := os.ReadFile(h.path)
	require.NoError(t, err)

	for _, args := range [][]string{
		{"delete", "5"},
		{"edit", "0", "x"},
		{"complete", "nope"},
		{"toggle", "-1"},
	} {
		assert.Equal(t, ExitUsage, h.run(args...), args)
		assert.Contains(t, h.err.String(), "Invalid todo number or id", args)
		assert.Empty(t, h.out.String())
	}

	after, err := os.ReadFile(h.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEditAndToggle(t *testing.T) {
	h := newHarness(t)
	h.seed("alpha")

	assert.Equal(t, ExitOK, h.run("edit", "1", "alpha", "two"))
	assert.Equal(t, "ok Todo #1 updated\n", h.out.String())
	assert.Equal(t, "alpha two", h.items()[0].Text)

	assert.Equal(t, ExitUsage, h.run("edit", "1", "  "))
	assert.Equal(t, "alpha two", h.items()[0].Text)

	assert.Equal(t, ExitOK, h.run("toggle", "1"))
	assert.Equal(t, "ok Todo #1 marked as completed\n", h.out.String())
	assert.Equal(t, ExitOK, h.run("toggle", "1"))
	assert.Equal(t, "ok Todo #1 marked as pending\n", h.out.String())
	assert.False(t, h.items()[0].Completed)
}

func TestSearch(t *testing.T) {
	h := newHarness(t)
	h.seed("Buy milk", "Walk dog", "buy bread")

	assert.Equal(t, ExitOK, h.run("search", "BUY"))
	assert.Equal(t, "1. [ ] Buy milk\n3. [ ] buy bread\n", h.out.String())

	assert.Equal(t, ExitOK, h.run("search", "cheese"))
	assert.Equal(t, "No todos found for \"cheese\"\n", h.out.String())
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	h.seed("alpha", "beta")
	assert.Equal(t, ExitOK, h.run("clear"))
	assert.Equal(t, "ok Todos cleared successfully\n", h.out.String())
	assert.Empty(t, h.items())
}

func TestMalformedFileIsTreatedAsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.path, []byte("{broken"), 0o644))

	assert.Equal(t, ExitOK, h.run("show"))
	assert.Contains(t, h.err.String(), "Error reading todo file")
	assert.Equal(t, "No todos found.\n", h.out.String())
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	tests := [][]string{
		{},
		{"add"},
		{"delete"},
		{"delete", "1", "2"},
		{"edit", "1"},
		{"complete"},
		{"toggle"},
		{"search"},
		{"frobnicate"},
	}
	for _, args := range tests {
		assert.Equal(t, ExitUsage, h.run(args...), args)
	}
	assert.Equal(t, ExitUsage, h.run("add", " "))
	assert.Contains(t, h.err.String(), model.ErrEmptyText.Error())
}

func TestHelpAndVersion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitOK, h.run("help"))
	assert.Contains(t, h.out.String(), "Subcommands:")
	assert.Equal(t, ExitOK, h.run("version"))
	assert.Equal(t, "todo "+Version+"\n", h.out.String())
}

func TestAmbiguousID(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.Save([]model.Todo{
		{ID: "abcd-1", Text: "one"},
		{ID: "abcd-2", Text: "two"},
	}))
	assert.Equal(t, ExitUsage, h.run("delete", "abcd"))
	assert.Contains(t, h.err.String(), "Ambiguous todo id: abcd")
	assert.Len(t, h.items(), 2)
}

func TestShowInteractive(t *testing.T) {
	h := newHarness(t)
	h.seed("alpha")

	var got []model.Todo
	h.browse = func(items []model.Todo) ([]model.Todo, bool, error) {
		got = items
		out := append([]model.Todo(nil), items...)
		out[0].Completed = true
		return out, true, nil
	}
	assert.Equal(t, ExitOK, h.run("show", "-i"))
	require.Len(t, got, 1)
	assert.True(t, h.items()[0].Completed)
	assert.Contains(t, h.out.String(), "saved")

	h.browse = func(items []model.Todo) ([]model.Todo, bool, error) {
		return nil, false, nil
	}
	assert.Equal(t, ExitOK, h.run("show", "-i"))
	assert.Len(t, h.items(), 1, "unchanged browse does not save")

	h.browse = func(items []model.Todo) ([]model.Todo, bool, error) {
		return nil, false, fmt.Errorf("no tty")
	}
	assert.Equal(t, ExitError, h.run("show", "-i"))
}
