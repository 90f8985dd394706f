package topology

import (
	"fmt"
	"strings"

	"github.com/sigreer/scsitree/internal/sysfs/sysfstest"
)

const pciSlot = "devices/pci0000:00/0000:00:01.0/0000:01:00.0"

// linkHost registers hostPath under bus/scsi/devices the way the kernel does
func linkHost(fs *sysfstest.Tree, name, hostPath string) {
	fs.Link(HostsPath+"/"+name, "../../../"+hostPath)
}

func addHba(fs *sysfstest.Tree, hostPath, procName string) {
	name := hostPath[strings.LastIndex(hostPath, "/")+1:]
	fs.Attrs(hostPath+"/scsi_host/"+name, map[string]string{
		"proc_name":  procName + "\n",
		"state":      "running\n",
		"BRM_status": "0\n",
		"version_fw": "16.00.01.00\n",
	})
	linkHost(fs, name, hostPath)
}

func addLun(fs *sysfstest.Tree, targetPath, lun, block string) string {
	lunPath := targetPath + "/" + lun
	fs.Attrs(lunPath, map[string]string{
		"vendor": "SEAGATE \t\n",
		"model":  "ST8000NM0055-1RM112\n",
		"state":  "running\n",
		"wwid":   "naa.5000c500d006891c\n",
	})
	if block != "" {
		fs.Attrs(lunPath+"/block/"+block, map[string]string{
			"size":      "15628053168\n",
			"ro":        "0\n",
			"removable": "0\n",
		})
	}
	return lunPath
}

func addEndDevice(fs *sysfstest.Tree, portPath, id string) string {
	ed := portPath + "/end_device-" + id
	fs.Attrs(ed+"/sas_device/end_device-"+id, map[string]string{
		"bay_identifier": "3\n",
		"sas_address":    "0x5000c500d006891d\n",
	})
	fs.Attrs(ed+"/sas_end_device/end_device-"+id, map[string]string{
		"tlr_supported":     "0\n",
		"ready_led_meaning": "1\n",
	})
	return ed
}

// buildSASChain lays out host0 -> phy-0:0 -> port -> end_device-0:0 ->
// target0:0:0 -> 0:0:0:0 -> sda with plain directories.
func buildSASChain(fs *sysfstest.Tree) {
	host := pciSlot + "/host0"
	addHba(fs, host, "mpt3sas")

	phy := host + "/phy-0:0"
	fs.Attrs(phy+"/sas_phy/phy-0:0", map[string]string{
		"negotiated_linkrate": "12.0 Gbit\n",
		"phy_identifier":      "0\n",
		"sas_address":         "0x500605b00a1b2c3d\n",
	})

	port := phy + "/port"
	fs.Attrs(port+"/sas_port/port", map[string]string{"num_phys": "1\n"})

	ed := addEndDevice(fs, port, "0:0")
	target := ed + "/target0:0:0"
	fs.Dir(target)
	addLun(fs, target, "0:0:0:0", "sda")
}

// buildSATAHost lays out host2 with a target directly below the HBA
func buildSATAHost(fs *sysfstest.Tree) {
	host := "devices/pci0000:00/0000:00:17.0/ata3/host2"
	addHba(fs, host, "ahci")

	target := host + "/target2:0:0"
	fs.Dir(target)
	addLun(fs, target, "2:0:0:0", "sdb")
}

// buildWidePort lays out a realistic mpt3sas host: two phys whose port
// links point at the same port-1:0 sibling, as in /sys.
func buildWidePort(fs *sysfstest.Tree) {
	host := "devices/pci0000:80/0000:80:02.0/0000:82:00.0/host1"
	addHba(fs, host, "mpt3sas")

	for i := 0; i < 2; i++ {
		phy := fmt.Sprintf("%s/phy-1:%d", host, i)
		fs.Attrs(fmt.Sprintf("%s/sas_phy/phy-1:%d", phy, i), map[string]string{
			"phy_identifier": fmt.Sprintf("%d\n", i),
		})
		fs.Link(phy+"/port", "../port-1:0")
	}

	port := host + "/port-1:0"
	fs.Attrs(port+"/sas_port/port-1:0", map[string]string{"num_phys": "2\n"})
	ed := addEndDevice(fs, port, "1:0")
	target := ed + "/target1:0:0"
	fs.Dir(target)
	addLun(fs, target, "1:0:0:0", "sdc")
}

// buildExpander hangs an expander with one downstream drive below
// host0's port. Its upstream phy links back to that port.
func buildExpander(fs *sysfstest.Tree) {
	host := pciSlot + "/host0"
	addHba(fs, host, "mpt3sas")

	fs.Dir(host + "/phy-0:0/sas_phy/phy-0:0")
	fs.Link(host+"/phy-0:0/port", "../port-0:0")
	port := host + "/port-0:0"
	fs.Attrs(port+"/sas_port/port-0:0", map[string]string{"num_phys": "4\n"})

	exp := port + "/expander-0:0"
	fs.Attrs(exp+"/sas_expander/expander-0:0", map[string]string{
		"vendor_id":  "LSI     \n",
		"product_id": "SAS3x28\n",
		"level":      "1\n",
	})

	// upstream phy: its port is the one containing the expander
	fs.Dir(exp + "/phy-0:0:0/sas_phy/phy-0:0:0")
	fs.Link(exp+"/phy-0:0:0/port", "../../../port-0:0")

	// downstream phy with a drive
	fs.Dir(exp + "/phy-0:0:12/sas_phy/phy-0:0:12")
	fs.Link(exp+"/phy-0:0:12/port", "../port-0:0:0")
	down := exp + "/port-0:0:0"
	fs.Attrs(down+"/sas_port/port-0:0:0", map[string]string{"num_phys": "1\n"})
	ed := addEndDevice(fs, down, "0:0:0")
	target := ed + "/target0:0:0"
	fs.Dir(target)
	addLun(fs, target, "0:0:0:0", "sdd")
}

func buildDMI(fs *sysfstest.Tree) {
	fs.Attrs(DMIPath+"/id", map[string]string{
		"board_name":   "X11SPL-F\n",
		"sys_vendor":   "Supermicro\n",
		"product_uuid": "00000000-0000-0000-0000-ac1f6b000000\n",
	})
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func attr(n *Node, name string) string {
	v, ok := n.Attr(name)
	if !ok || v == nil {
		return "<nil>"
	}
	return *v
}
