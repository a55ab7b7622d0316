package translate

import (
	"context"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"motion2constatus/constatus"
	"motion2constatus/motion"
)

// Inherit selects which directives a camera file sees besides its own.
type Inherit string

const (
	// InheritLayered lets a camera file see the directives of the files that
	// included it, but not those of its siblings.
	InheritLayered Inherit = "layered"
	// InheritShared reproduces motion's single shared table: every file also
	// sees whatever the files processed before it set.
	InheritShared Inherit = "shared"
)

const DefaultMaxDepth = 32

type Options struct {
	Inherit  Inherit
	MaxDepth int

	// DryRun receives every rendered configuration instead of the
	// filesystem when set.
	DryRun io.Writer
}

// Observer is told about the progress of a run.
type Observer interface {
	Translated(src, out string)
	Failed(src string, err error)
}

type Translator struct {
	opts     Options
	observer Observer
}

// Result lists, in processing order, the files a run tried to read and the
// files it wrote.
type Result struct {
	Sources []string
	Outputs []string
}

func NewTranslator(opts Options, o Observer) *Translator {
	if opts.Inherit == "" {
		opts.Inherit = InheritLayered
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Translator{opts: opts, observer: o}
}

type run struct {
	t    *Translator
	res  *Result
	last *motion.Config
}

// Run translates path and, depth first, every camera file it includes. The
// first failure aborts the run; outputs written before it are kept.
func (t *Translator) Run(ctx context.Context, path string) (*Result, error) {
	r := &run{t: t, res: &Result{}}
	err := r.process(ctx, path, nil, 0)
	if err != nil && t.observer != nil {
		t.observer.Failed(path, err)
	}
	return r.res, err
}

func (r *run) process(ctx context.Context, path string, parent *motion.Config, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth > r.t.opts.MaxDepth {
		return errors.Wrapf(ErrIncludeDepth, "%s: more than %d levels of camera includes", path, r.t.opts.MaxDepth)
	}
	if r.t.opts.Inherit == InheritShared && r.last != nil {
		parent = r.last
	}

	log.Infof("Processing %s", path)
	r.res.Sources = append(r.res.Sources, path)
	c, err := motion.Load(path, parent)
	if err != nil {
		return err
	}
	r.last = c
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Directives visible to %s: %v", path, spew.Sdump(c.Values()))
	}

	doc, err := constatus.FromMotion(c)
	if err != nil {
		return err
	}

	out := OutputPath(path)
	if r.t.opts.DryRun != nil {
		err = EmitTo(r.t.opts.DryRun, out, doc)
	} else {
		log.Infof("Writing to %s", out)
		err = Emit(out, doc)
	}
	if err != nil {
		return err
	}
	r.res.Outputs = append(r.res.Outputs, out)
	if r.t.observer != nil {
		r.t.observer.Translated(path, out)
	}

	for _, inc := range c.Includes() {
		if err := r.process(ctx, inc, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
