package topology

import (
	"fmt"
	"sync/atomic"
)

// Counts holds the number of nodes per category. Device counts SAS end
// devices and Lun counts SCSI devices, as in the output document.
type Counts struct {
	Host     int
	Phy      int
	Port     int
	Expander int
	Device   int
	Target   int
	Lun      int
	BlockDev int
}

func (c Counts) String() string {
	return fmt.Sprintf("hosts=%d phys=%d ports=%d expanders=%d devices=%d targets=%d luns=%d blockdevs=%d",
		c.Host, c.Phy, c.Port, c.Expander, c.Device, c.Target, c.Lun, c.BlockDev)
}

func (c *Counts) add(k Kind, n int) {
	switch k {
	case KindHba:
		c.Host += n
	case KindPhy:
		c.Phy += n
	case KindPort:
		c.Port += n
	case KindExpander:
		c.Expander += n
	case KindEndDevice:
		c.Device += n
	case KindTarget:
		c.Target += n
	case KindDevice:
		c.Lun += n
	case KindBlockDevice:
		c.BlockDev += n
	}
}

// CountTree counts the nodes of every kind reachable from roots
func CountTree(roots []*Node) Counts {
	var c Counts
	for _, r := range roots {
		r.Visit(func(n *Node) { c.add(n.Kind, 1) })
	}
	return c
}

// Aggregator tallies constructed nodes. It is safe for concurrent use.
type Aggregator struct {
	counters [KindBlockDevice + 1]atomic.Int64
}

// Increment records one node of kind k
func (a *Aggregator) Increment(k Kind) {
	if k < 0 || int(k) >= len(a.counters) {
		return
	}
	a.counters[k].Add(1)
}

// Counts returns a snapshot of the tallies
func (a *Aggregator) Counts() Counts {
	var c Counts
	for k := range a.counters {
		c.add(Kind(k), int(a.counters[k].Load()))
	}
	return c
}
