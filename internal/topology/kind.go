package topology

import "fmt"

// Kind tags a node with its place in the SCSI hierarchy
type Kind int

const (
	KindSystem Kind = iota
	KindHba
	KindPhy
	KindPort
	KindExpander
	KindEndDevice
	KindTarget
	KindDevice
	KindBlockDevice
)

var kindNames = map[Kind]string{
	KindSystem:      "system",
	KindHba:         "hba",
	KindPhy:         "phy",
	KindPort:        "port",
	KindExpander:    "expander",
	KindEndDevice:   "end_device",
	KindTarget:      "target",
	KindDevice:      "device",
	KindBlockDevice: "block_device",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}
