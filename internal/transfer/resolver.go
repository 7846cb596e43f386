// Package transfer resolves multi-item move/copy batches: it computes safe
// destination paths, rejects self-containment, and aggregates a result
// summary. Operations are filesystem mutations on the server and are not
// transactional across items; the resolver is at-most-once per item with no
// compensation.
package transfer

import (
	"context"
	"fmt"
	"strings"

	"filedeck/internal/domain"
)

// Operation is the transfer kind.
type Operation string

const (
	OpMove Operation = "move"
	OpCopy Operation = "copy"
)

// Strategy decides what happens when the destination already exists.
type Strategy string

const (
	StrategyOverwrite Strategy = "overwrite"
	StrategySkip      Strategy = "skip"
)

// Action pairs the operation with its collision strategy.
type Action struct {
	Operation Operation
	Strategy  Strategy
}

// Prompt is the pending transfer awaiting resolution: the source paths and
// the directory they are dropped into.
type Prompt struct {
	Paths      []string
	TargetPath string
}

// Request is a fully resolved transfer ready to execute.
type Request struct {
	Action Action
	Prompt Prompt
}

// Result aggregates per-item outcomes. Attempted counts the items a request
// was issued for; Performed and Skipped partition the successful responses;
// Failed counts items whose request errored.
type Result struct {
	Attempted int
	Performed int
	Skipped   int
	Failed    int
}

// FileOps is the resolver's only gateway to the remote filesystem.
type FileOps interface {
	Move(ctx context.Context, from, to string, overwrite bool) (performed bool, err error)
	Copy(ctx context.Context, from, to string, overwrite bool) (performed bool, err error)
}

// Notifier receives user-facing notifications. Per-item success toasts are
// suppressed in favor of one summary.
type Notifier interface {
	Toast(message string)
	Error(message string)
}

// Resolver executes transfer batches sequentially.
type Resolver struct {
	ops            FileOps
	notify         Notifier
	clearSelection func()
}

// NewResolver creates a resolver. clearSelection is invoked after every
// batch, even a partially failed one.
func NewResolver(ops FileOps, notify Notifier, clearSelection func()) *Resolver {
	return &Resolver{ops: ops, notify: notify, clearSelection: clearSelection}
}

// DestinationPath joins the target directory with the source's base name,
// special-casing the root so no double slash appears.
func DestinationPath(targetPath, source string) string {
	return domain.JoinPath(targetPath, domain.BaseName(source))
}

// isSelfContained reports whether dest lies inside the tree rooted at src.
func isSelfContained(src, dest string) bool {
	return strings.HasPrefix(dest, src+"/")
}

// PerformDrop runs the batch. Items are processed strictly sequentially so
// the aggregate counts are deterministic and the server is never flooded.
// Per-item failures do not abort the batch: the remaining items are still
// attempted and the failures tallied, the same policy the delete path uses.
func (r *Resolver) PerformDrop(ctx context.Context, req Request) Result {
	var result Result

	verb := "move"
	if req.Action.Operation == OpCopy {
		verb = "copy"
	}
	overwrite := req.Action.Strategy == StrategyOverwrite

	for _, src := range req.Prompt.Paths {
		src = domain.NormalizePath(src)
		dest := DestinationPath(req.Prompt.TargetPath, src)

		// Dropping an entry where it already lives is a silent no-op.
		if dest == src {
			continue
		}

		// Moving a directory into its own descendant would corrupt it.
		if isSelfContained(src, dest) {
			r.notify.Error(fmt.Sprintf("Cannot %s %s into itself", verb, domain.BaseName(src)))
			continue
		}

		result.Attempted++

		var performed bool
		var err error
		if req.Action.Operation == OpCopy {
			performed, err = r.ops.Copy(ctx, src, dest, overwrite)
		} else {
			performed, err = r.ops.Move(ctx, src, dest, overwrite)
		}

		if err != nil {
			result.Failed++
			r.notify.Error(fmt.Sprintf("Failed to %s %s: %v", verb, domain.BaseName(src), err))
			continue
		}
		if performed {
			result.Performed++
		} else {
			result.Skipped++
		}
	}

	// Selection is dropped even when nothing was attempted or parts failed.
	if r.clearSelection != nil {
		r.clearSelection()
	}

	if result.Attempted > 0 {
		r.notify.Toast(Summary(req.Action.Operation, result))
	}

	return result
}

// Summary formats the single batch notification, e.g.
// "Moved 1 of 2 items (skipped 1)".
func Summary(op Operation, result Result) string {
	verb := "Moved"
	if op == OpCopy {
		verb = "Copied"
	}
	msg := fmt.Sprintf("%s %d of %d items", verb, result.Performed, result.Attempted)
	if result.Skipped > 0 {
		msg += fmt.Sprintf(" (skipped %d)", result.Skipped)
	}
	return msg
}
