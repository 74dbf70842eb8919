package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIDs returns an IDFunc handing out id-1, id-2, ...
func seqIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func sample() []Todo {
	return []Todo{
		{ID: "aaaa1111-0000", Text: "Buy milk"},
		{ID: "bbbb2222-0000", Text: "Walk the dog", Completed: true},
		{ID: "bbbb3333-0000", Text: "buy bread"},
	}
}

func TestAdd(t *testing.T) {
	list, added, err := Add(nil, "  Buy milk ", seqIDs("id"))
	require.NoError(t, err)
	assert.Equal(t, Todo{ID: "id-1", Text: "Buy milk"}, added)
	require.Len(t, list, 1)

	got, err := Find(list, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	got, err = Find(list, "1")
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestAdd_DefaultIDIsUUID(t *testing.T) {
	list, added, err := Add([]Todo{}, "x", nil)
	require.NoError(t, err)
	assert.Len(t, added.ID, 36)
	assert.Len(t, list, 1)
}

func TestAdd_DoesNotShareBackingArray(t *testing.T) {
	base := make([]Todo, 1, 4)
	base[0] = Todo{ID: "a", Text: "first"}

	first, _, err := Add(base, "second", seqIDs("x"))
	require.NoError(t, err)
	second, _, err := Add(base, "other", seqIDs("y"))
	require.NoError(t, err)

	assert.Equal(t, "second", first[1].Text)
	assert.Equal(t, "other", second[1].Text)
	assert.Len(t, base, 1)
	assert.Equal(t, "first", base[:cap(base)][0].Text)
	assert.Equal(t, Todo{}, base[:2][1], "spare capacity untouched")
}

func TestAdd_EmptyText(t *testing.T) {
	in := sample()
	list, _, err := Add(in, "   ", seqIDs("id"))
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, in, list)
}

func TestResolve(t *testing.T) {
	list := sample()
	tests := []struct {
		name    string
		key     string
		want    int
		wantErr error
	}{
		{name: "position", key: "2", want: 1},
		{name: "position with spaces", key: " 3 ", want: 2},
		{name: "exact id", key: "bbbb3333-0000", want: 2},
		{name: "unique prefix", key: "aaaa", want: 0},
		{name: "ambiguous prefix", key: "bbbb", wantErr: ErrAmbiguousKey},
		{name: "short prefix", key: "aaa", wantErr: ErrNotFound},
		{name: "zero", key: "0", wantErr: ErrNotFound},
		{name: "past end", key: "4", wantErr: ErrNotFound},
		{name: "negative", key: "-1", wantErr: ErrNotFound},
		{name: "unknown", key: "zzzz", wantErr: ErrNotFound},
		{name: "empty", key: "", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(list, tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var ke *KeyError
				assert.ErrorAs(t, err, &ke)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NumericIDPrefix(t *testing.T) {
	list := []Todo{{ID: "12345678-abcd", Text: "a"}}
	i, err := Resolve(list, "12345678")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	_, err = Resolve(list, "99999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "index out of range: have 1, got 99999")
}

func TestDelete(t *testing.T) {
	in := sample()
	list, removed, err := Delete(in, "2")
	require.NoError(t, err)
	assert.Equal(t, "Walk the dog", removed.Text)
	assert.Len(t, list, 2)
	_, err = Find(list, removed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// input untouched
	assert.Equal(t, sample(), in)
}

func TestDelete_NotFound(t *testing.T) {
	in := sample()
	list, _, err := Delete(in, "9")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, sample(), list)
}

func TestEdit(t *testing.T) {
	list, edited, err := Edit(sample(), "aaaa1111-0000", "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", edited.Text)
	assert.Equal(t, "aaaa1111-0000", edited.ID)
	assert.Equal(t, "Buy oat milk", list[0].Text)

	_, _, err = Edit(sample(), "1", " ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, _, err = Edit(sample(), "7", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetCompleted(t *testing.T) {
	list, got, err := SetCompleted(sample(), "1", true)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.True(t, list[0].Completed)

	list, got, err = SetCompleted(list, "1", true)
	require.NoError(t, err)
	assert.True(t, got.Completed, "idempotent")
	assert.Equal(t, 2, Stats(list).Completed)
}

func TestToggle_SelfInverse(t *testing.T) {
	for i := range sample() {
		key := fmt.Sprint(i + 1)
		orig := sample()
		once, _, err := Toggle(orig, key)
		require.NoError(t, err)
		assert.NotEqual(t, orig[i].Completed, once[i].Completed)
		twice, _, err := Toggle(once, key)
		require.NoError(t, err)
		assert.Equal(t, orig, twice)
	}

	_, _, err := Toggle(nil, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	lists := [][]Todo{nil, {}, sample(), {{ID: "a", Completed: true}}}
	for _, l := range lists {
		s := Stats(l)
		assert.Equal(t, len(l), s.Total)
		assert.Equal(t, s.Total, s.Completed+s.Pending)
	}
	assert.Equal(t, Counts{Total: 3, Completed: 1, Pending: 2}, Stats(sample()))
}

func TestSearch(t *testing.T) {
	got := Search(sample(), "BUY")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, "Buy milk", got[0].Todo.Text)
	assert.Equal(t, 3, got[1].Position)
	assert.Equal(t, "buy bread", got[1].Todo.Text)

	none := Search(sample(), "cheese")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sample()))
	assert.Error(t, Validate([]Todo{{ID: ""}}))
	err := Validate([]Todo{{ID: "x"}, {ID: "y"}, {ID: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestExample_BuyMilk(t *testing.T) {
	list, _, err := Add([]Todo{}, "Buy milk", nil)
	require.NoError(t, err)
	assert.Equal(t, Counts{Total: 1, Pending: 1}, Stats(list))

	list, _, err = SetCompleted(list, "1", true)
	require.NoError(t, err)
	assert.Equal(t, Counts{Total: 1, Completed: 1}, Stats(list))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "aaaa1111", ShortID("aaaa1111-0000"))
	assert.Equal(t, "abc", ShortID("abc"))
}
