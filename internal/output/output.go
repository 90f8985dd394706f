// Package output renders a discovered topology as JSON, YAML or a table.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/sigreer/scsitree/internal/topology"
)

// Format names an output encoding
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or table)", s)
}

// sectorSize is the unit of the block "size" attribute
const sectorSize = 512

// PrintJSON outputs the document as indented JSON
func PrintJSON(w io.Writer, doc interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// PrintYAML outputs the document as YAML
func PrintYAML(w io.Writer, doc interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// PrintTable outputs one row per SCSI device followed by the counts
func PrintTable(w io.Writer, tree *topology.Tree) {
	if tree.System != nil {
		fmt.Fprintf(w, "Host:       %s\n", orDash(tree.System, "hostname"))
		fmt.Fprintf(w, "Board:      %s %s\n", orDash(tree.System, "board_vendor"), orDash(tree.System, "board_name"))
		fmt.Fprintln(w)
	}

	devices := newTable(w)
	devices.SetTitle("Devices")
	devices.AppendHeader(table.Row{"#", "Host", "Driver", "Target", "LUN", "Block", "Vendor", "Model", "Size", "State"})
	index := 0
	for _, hba := range tree.Hbas {
		driver := orDash(hba, "proc_name")
		for _, row := range deviceRows(hba) {
			index++
			devices.AppendRow(append(table.Row{index, hba.Name, driver}, row...))
		}
	}
	devices.Render()
	fmt.Fprintln(w)

	c := tree.Counts
	counts := newTable(w)
	counts.SetTitle("Counts")
	header := table.Row{"Hosts", "Phys", "Ports"}
	row := table.Row{c.Host, c.Phy, c.Port}
	if tree.Expanders {
		header = append(header, "Expanders")
		row = append(row, c.Expander)
	}
	header = append(header, "Devices", "Targets", "LUNs", "Block Devs")
	row = append(row, c.Device, c.Target, c.Lun, c.BlockDev)
	counts.AppendHeader(header)
	counts.AppendRow(row)
	counts.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.Style().Format.Header = text.FormatDefault
	return t
}

// deviceRows lists target, LUN, block, vendor, model, size and state for
// every SCSI device below n, in walk order.
func deviceRows(n *topology.Node) []table.Row {
	var rows []table.Row
	var visit func(parent, n *topology.Node)
	visit = func(parent, n *topology.Node) {
		if n.Kind != topology.KindDevice {
			for _, c := range n.Children {
				visit(n, c)
			}
			return
		}
		target := "-"
		if parent != nil && parent.Kind == topology.KindTarget {
			target = parent.Name
		}
		block, size := "-", "-"
		for _, c := range n.Children {
			if c.Kind == topology.KindBlockDevice {
				block = c.Name
				size = formatSectors(c)
				break
			}
		}
		rows = append(rows, table.Row{target, n.Name, block,
			orDash(n, "vendor"), orDash(n, "model"), size, orDash(n, "state")})
	}
	visit(nil, n)
	return rows
}

func formatSectors(n *topology.Node) string {
	v, _ := n.Attr("size")
	if v == nil {
		return "-"
	}
	sectors, err := strconv.ParseUint(*v, 10, 64)
	if err != nil {
		return *v
	}
	return humanize.IBytes(sectors * sectorSize)
}

func orDash(n *topology.Node, name string) string {
	if v, _ := n.Attr(name); v != nil {
		return *v
	}
	return "-"
}
