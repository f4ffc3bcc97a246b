// Package walker drives a compiled matcher over directory trees.
package walker

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/pbrass/findr/runtime/eval"
)

// VisitFunc receives every entry the matcher accepts, in depth-first order.
// Returning an error stops the walk immediately.
type VisitFunc func(path string, d fs.DirEntry) error

// Walker traverses one or more root directories depth-first, applying the
// matcher to every entry including the roots themselves. Traversal problems
// such as unreadable directories do not stop the walk; they are collected
// and reported together once all roots are done.
type Walker struct {
	matcher *eval.Matcher
	log     logrus.FieldLogger
}

func New(m *eval.Matcher, log logrus.FieldLogger) *Walker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Walker{matcher: m, log: log}
}

// Walk visits each root in argument order. Symlinks are not followed. The
// returned error aggregates per-entry traversal failures; an error from the
// visit callback or a cancelled context aborts the walk and is returned
// alone.
func (w *Walker) Walk(ctx context.Context, roots []string, visit VisitFunc) error {
	var walkErrs *multierror.Error

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if err != nil {
				w.log.WithError(err).WithField("path", path).Debug("cannot read entry")
				walkErrs = multierror.Append(walkErrs, err)
				return nil
			}
			if w.matcher.Match(path, d) {
				return visit(path, d)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return walkErrs.ErrorOrNil()
}
