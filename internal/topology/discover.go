package topology

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sigreer/scsitree/internal/ordered"
	"github.com/sigreer/scsitree/internal/sysfs"
)

// DefaultRoot is where sysfs is normally mounted
const DefaultRoot = "/sys"

// HostsPath is where the SCSI bus lists its hosts, relative to the root
const HostsPath = "bus/scsi/devices"

// Options controls a discovery pass
type Options struct {
	Root      string // sysfs mount, DefaultRoot when empty
	Expanders bool
	Workers   int
	Hostname  func() string // defaults to Hostname
	Log       logrus.FieldLogger
}

// Tree is the result of one discovery pass
type Tree struct {
	System    *Node
	Hbas      []*Node
	Counts    Counts
	Expanders bool
}

// Discover walks sysfs once and returns the storage topology. The tree is
// returned even with ErrCountMismatch so callers can still inspect it.
func Discover(opts Options) (*Tree, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}
	hostname := opts.Hostname
	if hostname == nil {
		hostname = Hostname
	}

	var tableOpts []TableOption
	if opts.Expanders {
		tableOpts = append(tableOpts, WithExpanders())
	}
	table := DefaultTable(tableOpts...)
	reader := sysfs.NewReader(log)

	log.WithField("root", root).Info("Collecting device information")

	tree := &Tree{Expanders: opts.Expanders}
	tree.System = ReadSystem(table, reader, root, hostname(), log)

	hbaPaths, err := sysfs.Glob(filepath.Join(root, HostsPath), "host*")
	if err != nil {
		return nil, fmt.Errorf("failed to list SCSI hosts: %w", err)
	}

	walker := NewWalker(table, reader, WithLogger(log), WithWorkers(opts.Workers))
	tree.Hbas = walker.WalkAll(hbaPaths, KindHba)
	tree.Counts = walker.Counts()

	log.WithField("counts", tree.Counts).Info("Finished collecting device information")

	if counted := CountTree(tree.Hbas); counted != tree.Counts {
		return tree, fmt.Errorf("%w: walked %s, tree holds %s", ErrCountMismatch, tree.Counts, counted)
	}
	return tree, nil
}

// Document builds the output document: system identity, hosts keyed by
// name and the per-category counts.
func (t *Tree) Document(a *Assembler, sortKeys bool) *ordered.Map {
	hosts := ordered.New()
	for _, hba := range t.Hbas {
		hosts.Set(hba.Name, a.Assemble(hba))
	}

	doc := ordered.New()
	if t.System != nil {
		doc.Set("system", a.Attributes(t.System))
	} else {
		doc.Set("system", nil)
	}
	doc.Set("hosts", hosts)
	doc.Set("hostcount", t.Counts.Host)
	doc.Set("phycount", t.Counts.Phy)
	doc.Set("portcount", t.Counts.Port)
	if t.Expanders {
		doc.Set("expandercount", t.Counts.Expander)
	}
	doc.Set("devicecount", t.Counts.Device)
	doc.Set("targetcount", t.Counts.Target)
	doc.Set("luncount", t.Counts.Lun)
	doc.Set("blockdevcount", t.Counts.BlockDev)

	if sortKeys {
		return doc.Sorted()
	}
	return doc
}
