package topology

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sigreer/scsitree/internal/sysfs"
)

// DMIPath is where the firmware identity lives, relative to the sysfs root
const DMIPath = "devices/virtual/dmi"

// ReadSystem reads the board/BIOS identity block. It never fails: a
// machine without DMI gets null values.
func ReadSystem(table Table, reader AttributeReader, root, hostname string, log logrus.FieldLogger) *Node {
	nt := table[KindSystem]

	devicePath := filepath.Join(root, DMIPath)
	if p, err := sysfs.Canonicalize(devicePath); err == nil {
		devicePath = p
	} else {
		log.WithField("path", devicePath).WithError(err).Warn("Unable to resolve DMI path")
	}

	node := &Node{
		Kind:       KindSystem,
		Name:       "system",
		DevicePath: devicePath,
		DataPath:   nt.DataPath(devicePath),
	}

	var h *string
	if hostname != "" {
		h = &hostname
	}
	node.Attributes = append(node.Attributes, Attribute{Name: "hostname", Value: h})
	for _, spec := range nt.Attributes {
		node.Attributes = append(node.Attributes, Attribute{
			Name:  spec.Key,
			Value: reader.Read(node.DataPath, spec.FileName()),
		})
	}
	return node
}
