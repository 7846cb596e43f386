package transfer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type opCall struct {
	op        Operation
	from, to  string
	overwrite bool
}

type fakeOps struct {
	calls []opCall
	// keyed by source path
	errs    map[string]error
	skipped map[string]bool
}

func (f *fakeOps) Move(ctx context.Context, from, to string, overwrite bool) (bool, error) {
	return f.record(OpMove, from, to, overwrite)
}

func (f *fakeOps) Copy(ctx context.Context, from, to string, overwrite bool) (bool, error) {
	return f.record(OpCopy, from, to, overwrite)
}

func (f *fakeOps) record(op Operation, from, to string, overwrite bool) (bool, error) {
	f.calls = append(f.calls, opCall{op: op, from: from, to: to, overwrite: overwrite})
	if err := f.errs[from]; err != nil {
		return false, err
	}
	return !f.skipped[from], nil
}

type fakeNotify struct {
	toasts []string
	errs   []string
}

func (f *fakeNotify) Toast(message string) { f.toasts = append(f.toasts, message) }
func (f *fakeNotify) Error(message string) { f.errs = append(f.errs, message) }

func newTestResolver(ops *fakeOps) (*Resolver, *fakeNotify, *int) {
	notify := &fakeNotify{}
	cleared := 0
	r := NewResolver(ops, notify, func() { cleared++ })
	return r, notify, &cleared
}

func TestDestinationPath(t *testing.T) {
	require.Equal(t, "/Projects/report.txt", DestinationPath("/Projects", "/docs/report.txt"))
	require.Equal(t, "/report.txt", DestinationPath("/", "/docs/report.txt"))
	require.Equal(t, "/a/b/dir", DestinationPath("/a/b", "/x/dir"))
}

func TestPerformDropMovesBatch(t *testing.T) {
	ops := &fakeOps{}
	r, notify, cleared := newTestResolver(ops)

	res := r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpMove, Strategy: StrategyOverwrite},
		Prompt: Prompt{Paths: []string{"/docs/a.txt", "/docs/b.txt"}, TargetPath: "/archive"},
	})

	require.Equal(t, Result{Attempted: 2, Performed: 2}, res)
	require.Equal(t, []opCall{
		{op: OpMove, from: "/docs/a.txt", to: "/archive/a.txt", overwrite: true},
		{op: OpMove, from: "/docs/b.txt", to: "/archive/b.txt", overwrite: true},
	}, ops.calls)
	require.Equal(t, []string{"Moved 2 of 2 items"}, notify.toasts)
	require.Empty(t, notify.errs)
	require.Equal(t, 1, *cleared)
}

func TestPerformDropCopyUsesSkipStrategy(t *testing.T) {
	ops := &fakeOps{}
	r, _, _ := newTestResolver(ops)

	r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpCopy, Strategy: StrategySkip},
		Prompt: Prompt{Paths: []string{"/a.txt"}, TargetPath: "/dest"},
	})

	require.Equal(t, []opCall{{op: OpCopy, from: "/a.txt", to: "/dest/a.txt", overwrite: false}}, ops.calls)
}

func TestPerformDropSkippedItemsInSummary(t *testing.T) {
	ops := &fakeOps{skipped: map[string]bool{"/docs/b.txt": true}}
	r, notify, _ := newTestResolver(ops)

	res := r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpMove, Strategy: StrategySkip},
		Prompt: Prompt{Paths: []string{"/docs/a.txt", "/docs/b.txt"}, TargetPath: "/archive"},
	})

	require.Equal(t, Result{Attempted: 2, Performed: 1, Skipped: 1}, res)
	require.Equal(t, []string{"Moved 1 of 2 items (skipped 1)"}, notify.toasts)
}

func TestPerformDropRejectsSelfContainment(t *testing.T) {
	ops := &fakeOps{}
	r, notify, cleared := newTestResolver(ops)

	res := r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpMove, Strategy: StrategyOverwrite},
		Prompt: Prompt{Paths: []string{"/Projects"}, TargetPath: "/Projects/Sub"},
	})

	require.Empty(t, ops.calls)
	require.Equal(t, Result{}, res)
	require.Equal(t, []string{"Cannot move Projects into itself"}, notify.errs)
	require.Empty(t, notify.toasts) // nothing attempted, no summary
	require.Equal(t, 1, *cleared)
}

func TestPerformDropSamePathIsSilentNoop(t *testing.T) {
	ops := &fakeOps{}
	r, notify, cleared := newTestResolver(ops)

	res := r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpMove, Strategy: StrategyOverwrite},
		Prompt: Prompt{Paths: []string{"/docs/a.txt"}, TargetPath: "/docs"},
	})

	require.Empty(t, ops.calls)
	require.Equal(t, Result{}, res)
	require.Empty(t, notify.toasts)
	require.Empty(t, notify.errs)
	// Selection is still dropped so the UI leaves drag state cleanly.
	require.Equal(t, 1, *cleared)
}

func TestPerformDropContinuesPastFailures(t *testing.T) {
	ops := &fakeOps{errs: map[string]error{"/docs/b.txt": errors.New("permission denied")}}
	r, notify, cleared := newTestResolver(ops)

	res := r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpCopy, Strategy: StrategyOverwrite},
		Prompt: Prompt{Paths: []string{"/docs/a.txt", "/docs/b.txt", "/docs/c.txt"}, TargetPath: "/archive"},
	})

	require.Len(t, ops.calls, 3)
	require.Equal(t, Result{Attempted: 3, Performed: 2, Failed: 1}, res)
	require.Equal(t, []string{"Failed to copy b.txt: permission denied"}, notify.errs)
	require.Equal(t, []string{"Copied 2 of 3 items"}, notify.toasts)
	require.Equal(t, 1, *cleared)
}

func TestPerformDropMixedBatch(t *testing.T) {
	// One valid item alongside a self-containment rejection: the valid one
	// still transfers and the summary counts only attempted items.
	ops := &fakeOps{}
	r, notify, _ := newTestResolver(ops)

	res := r.PerformDrop(context.Background(), Request{
		Action: Action{Operation: OpMove, Strategy: StrategyOverwrite},
		Prompt: Prompt{Paths: []string{"/Projects", "/notes.txt"}, TargetPath: "/Projects/Sub"},
	})

	require.Equal(t, Result{Attempted: 1, Performed: 1}, res)
	require.Equal(t, []opCall{{op: OpMove, from: "/notes.txt", to: "/Projects/Sub/notes.txt", overwrite: true}}, ops.calls)
	require.Equal(t, []string{"Cannot move Projects into itself"}, notify.errs)
	require.Equal(t, []string{"Moved 1 of 1 items"}, notify.toasts)
}

func TestIsSelfContained(t *testing.T) {
	require.True(t, isSelfContained("/a", "/a/b"))
	require.True(t, isSelfContained("/a/b", "/a/b/c/d"))
	require.False(t, isSelfContained("/a", "/a"))
	// Sibling with a shared name prefix is not containment.
	require.False(t, isSelfContained("/a", "/ab/c"))
}

func TestSummaryFormatting(t *testing.T) {
	cases := []struct {
		op   Operation
		res  Result
		want string
	}{
		{OpMove, Result{Attempted: 2, Performed: 2}, "Moved 2 of 2 items"},
		{OpMove, Result{Attempted: 2, Performed: 1, Skipped: 1}, "Moved 1 of 2 items (skipped 1)"},
		{OpCopy, Result{Attempted: 3, Performed: 1, Skipped: 2}, "Copied 1 of 3 items (skipped 2)"},
		{OpCopy, Result{Attempted: 1, Performed: 0, Failed: 1}, "Copied 0 of 1 items"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%d_of_%d", tc.op, tc.res.Performed, tc.res.Attempted), func(t *testing.T) {
			require.Equal(t, tc.want, Summary(tc.op, tc.res))
		})
	}
}
