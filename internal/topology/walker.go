package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sigreer/scsitree/internal/sysfs"
)

// AttributeReader returns the sanitized value of one attribute file, or nil
type AttributeReader interface {
	Read(dataPath, name string) *string
}

// Walker builds node subtrees by descending sysfs according to a Table
type Walker struct {
	table  Table
	reader AttributeReader
	log    logrus.FieldLogger
	agg    *Aggregator
	sem    *semaphore.Weighted
}

// WalkerOption configures a Walker
type WalkerOption func(*Walker)

// WithLogger sets the diagnostic sink
func WithLogger(log logrus.FieldLogger) WalkerOption {
	return func(w *Walker) {
		w.log = log
	}
}

// WithWorkers allows up to n-1 sibling subtrees to be built in parallel
// goroutines. n <= 1 keeps the walk synchronous.
func WithWorkers(n int) WalkerOption {
	return func(w *Walker) {
		if n > 1 {
			w.sem = semaphore.NewWeighted(int64(n - 1))
		} else {
			w.sem = nil
		}
	}
}

// NewWalker creates a walker over table reading attributes with reader
func NewWalker(table Table, reader AttributeReader, opts ...WalkerOption) *Walker {
	w := &Walker{
		table:  table,
		reader: reader,
		log:    logrus.StandardLogger(),
		agg:    &Aggregator{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Counts returns the nodes constructed so far, per category
func (w *Walker) Counts() Counts {
	return w.agg.Counts()
}

// Walk builds the node of the given kind at path together with its whole
// subtree. Only a failure to resolve path itself is returned; unreadable
// attributes and unresolvable descendants are logged and left out.
func (w *Walker) Walk(path string, kind Kind) (*Node, error) {
	return w.walk(path, kind, nil)
}

func (w *Walker) walk(path string, kind Kind, ancestors []string) (*Node, error) {
	nt, ok := w.table[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}

	devicePath, err := sysfs.Canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", kind, path, ErrPathResolution, err)
	}
	fi, err := os.Stat(devicePath)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", kind, path, ErrPathResolution, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s %s: %w", kind, devicePath, ErrNotDirectory)
	}
	if slices.Contains(ancestors, devicePath) {
		return nil, fmt.Errorf("%s %s: %w", kind, devicePath, ErrCycle)
	}

	node := &Node{
		Kind:       kind,
		Name:       filepath.Base(devicePath),
		DevicePath: devicePath,
		DataPath:   nt.DataPath(devicePath),
	}
	node.Attributes = w.readAttributes(nt, node)
	w.agg.Increment(kind)

	node.Children = w.walkChildren(nt, node, append(slices.Clip(ancestors), devicePath))
	return node, nil
}

func (w *Walker) readAttributes(nt *NodeType, node *Node) []Attribute {
	attrs := make([]Attribute, 0, len(nt.Attributes))
	for _, spec := range nt.Attributes {
		dataPath := node.DataPath
		if spec.Suffix != "" {
			dataPath = expandSuffix(node.DevicePath, spec.Suffix)
		}
		attrs = append(attrs, Attribute{
			Name:  spec.Key,
			Value: w.reader.Read(dataPath, spec.FileName()),
		})
	}
	return attrs
}

type childJob struct {
	path string
	kind Kind
}

func (w *Walker) discover(node *Node, rules []ChildRule) []childJob {
	var jobs []childJob
	for _, rule := range rules {
		matches, err := sysfs.Glob(node.DevicePath, rule.Pattern)
		if err != nil {
			w.log.WithFields(logrus.Fields{"path": node.DevicePath, "pattern": rule.Pattern}).
				WithError(err).Warn("Unable to list children")
			continue
		}
		for _, m := range matches {
			jobs = append(jobs, childJob{path: m, kind: rule.Kind})
		}
	}
	return jobs
}

func (w *Walker) walkChildren(nt *NodeType, node *Node, ancestors []string) []*Node {
	jobs := w.discover(node, nt.Children)
	if len(jobs) == 0 && len(nt.Otherwise) > 0 {
		w.log.WithFields(logrus.Fields{"kind": node.Kind, "name": node.Name}).
			Debug("No primary children, trying fallback rules")
		jobs = w.discover(node, nt.Otherwise)
	}
	if len(jobs) == 0 {
		return nil
	}

	return w.build(jobs, ancestors)
}

// WalkAll walks every path as kind, in the given order. Paths that cannot
// be resolved are logged and left out.
func (w *Walker) WalkAll(paths []string, kind Kind) []*Node {
	jobs := make([]childJob, len(paths))
	for i, p := range paths {
		jobs[i] = childJob{path: p, kind: kind}
	}
	return w.build(jobs, nil)
}

func (w *Walker) build(jobs []childJob, ancestors []string) []*Node {
	// Slots are fixed up front so sibling order does not depend on which
	// goroutine finishes first.
	slots := make([]*Node, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		if w.sem != nil && w.sem.TryAcquire(1) {
			g.Go(func() error {
				defer w.sem.Release(1)
				slots[i] = w.child(job, ancestors)
				return nil
			})
			continue
		}
		slots[i] = w.child(job, ancestors)
	}
	_ = g.Wait()

	nodes := make([]*Node, 0, len(slots))
	for _, n := range slots {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (w *Walker) child(job childJob, ancestors []string) *Node {
	n, err := w.walk(job.path, job.kind, ancestors)
	if err != nil {
		w.log.WithFields(logrus.Fields{"path": job.path, "kind": job.kind}).
			WithError(err).Warn("Skipping node")
		return nil
	}
	return n
}
