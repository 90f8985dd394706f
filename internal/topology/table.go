package topology

import (
	"path/filepath"
	"strings"
)

// Hba -> Phy -> Port -> [Expander -> Phy -> Port ->] EndDevice -> Target -> Device -> BlockDevice
// /sys/class/scsi_host/host0/device/phy-0:0/sas_phy/phy-0:0/device/port/end_device-0:0/target0:0:0/0:0:0:0/block/sda

// AttributeSpec names one attribute file of a node kind
type AttributeSpec struct {
	Key    string // output key
	File   string // file name when it differs from Key
	Suffix string // overrides the kind's DataSuffix for this attribute
}

// FileName returns the attribute's file name
func (a AttributeSpec) FileName() string {
	if a.File != "" {
		return a.File
	}
	return a.Key
}

// ChildRule says which entries below a node's device path become children
type ChildRule struct {
	Pattern string
	Kind    Kind
}

// NodeType describes what a node of one kind looks like and what it can
// contain.
type NodeType struct {
	Kind Kind

	// DataSuffix locates the attribute directory relative to the device
	// path; "{name}" expands to the node name. Empty means the device path
	// itself.
	DataSuffix string

	Attributes []AttributeSpec

	Children []ChildRule

	// Otherwise is only consulted when no Children pattern matched
	// anything. A SATA HBA has no phys and exposes targets directly.
	Otherwise []ChildRule
}

// DataPath returns the attribute directory for a node at devicePath
func (nt *NodeType) DataPath(devicePath string) string {
	return expandSuffix(devicePath, nt.DataSuffix)
}

func expandSuffix(devicePath, suffix string) string {
	if suffix == "" {
		return devicePath
	}
	name := filepath.Base(devicePath)
	return filepath.Join(devicePath, strings.ReplaceAll(suffix, "{name}", name))
}

// Table maps every kind to its description
type Table map[Kind]*NodeType

// TableOption adjusts the default table
type TableOption func(Table)

// WithExpanders lets ports contain SAS expanders, whose phys and ports
// repeat the HBA side of the hierarchy.
func WithExpanders() TableOption {
	return func(t Table) {
		port := t[KindPort]
		port.Children = append(port.Children, ChildRule{Pattern: "expander-*", Kind: KindExpander})
		t[KindExpander] = &NodeType{
			Kind:       KindExpander,
			DataSuffix: "sas_expander/{name}",
			Attributes: keys(
				"vendor_id",
				"product_id",
				"product_rev",
				"component_vendor_id",
				"component_id",
				"component_revision_id",
				"level",
			),
			Children: []ChildRule{{Pattern: "phy-*", Kind: KindPhy}},
		}
	}
}

// HasExpanders reports whether the table knows the expander kind
func (t Table) HasExpanders() bool {
	_, ok := t[KindExpander]
	return ok
}

func keys(names ...string) []AttributeSpec {
	specs := make([]AttributeSpec, len(names))
	for i, n := range names {
		specs[i] = AttributeSpec{Key: n}
	}
	return specs
}

// DefaultTable returns the Linux sysfs layout of the SCSI/SAS transport
// classes. Each call returns a fresh table.
func DefaultTable(opts ...TableOption) Table {
	endDevice := keys(
		"bay_identifier",
		"device_type",
		"enclosure_identifier",
		"initiator_port_protocols",
		"phy_identifier",
		"sas_address",
		"scsi_target_id",
		"target_port_protocols",
	)
	for _, k := range []string{
		"i_t_nexus_loss_timeout",
		"initiator_response_timeout",
		"ready_led_meaning",
		"tlr_enabled",
		"tlr_supported",
	} {
		endDevice = append(endDevice, AttributeSpec{Key: k, Suffix: "sas_end_device/{name}"})
	}

	hba := keys(
		"active_mode",
		"board_assembly",
		"board_name",
		"board_tracer",
	)
	hba = append(hba, AttributeSpec{Key: "brm_status", File: "BRM_status"})
	hba = append(hba, keys(
		"can_queue",
		"cmd_per_lun",
		"eh_deadline",
		"fw_queue_depth",
		"host_busy",
		"host_sas_address",
		"ioc_reset_count",
		"io_delay",
		"logging_level",
		"proc_name",
		"prot_capabilities",
		"prot_guard_type",
		"reply_queue_count",
		"sg_prot_tablesize",
		"sg_tablesize",
		"state",
		"supported_mode",
		"unchecked_isa_dma",
		"unique_id",
		"use_blk_mq",
		"version_bios",
		"version_fw",
		"version_mpi",
		"version_nvdata_default",
		"version_nvdata_persistent",
		"version_product",
	)...)

	t := Table{
		KindSystem: {
			Kind:       KindSystem,
			DataSuffix: "id",
			Attributes: keys(
				"bios_date",
				"bios_vendor",
				"bios_version",
				"board_asset_tag",
				"board_name",
				"board_serial",
				"board_vendor",
				"board_version",
				"chassis_asset_tag",
				"chassis_serial",
				"chassis_type",
				"chassis_vendor",
				"chassis_version",
				"product_family",
				"product_name",
				"product_serial",
				"product_sku",
				"product_uuid",
				"product_version",
				"sys_vendor",
			),
		},
		KindHba: {
			Kind:       KindHba,
			DataSuffix: "scsi_host/{name}",
			Attributes: hba,
			Children:   []ChildRule{{Pattern: "phy-*", Kind: KindPhy}},
			Otherwise:  []ChildRule{{Pattern: "target[0-9]*", Kind: KindTarget}},
		},
		KindPhy: {
			Kind:       KindPhy,
			DataSuffix: "sas_phy/{name}",
			Attributes: keys(
				"device_type",
				"enable",
				"initiator_port_protocols",
				"invalid_dword_count",
				"loss_of_dword_sync_count",
				"maximum_linkrate",
				"maximum_linkrate_hw",
				"minimum_linkrate",
				"minimum_linkrate_hw",
				"negotiated_linkrate",
				"phy_identifier",
				"phy_reset_problem_count",
				"running_disparity_error_count",
				"sas_address",
				"target_port_protocols",
			),
			Children: []ChildRule{{Pattern: "port", Kind: KindPort}},
		},
		KindPort: {
			Kind:       KindPort,
			DataSuffix: "sas_port/{name}",
			Attributes: keys("num_phys"),
			Children:   []ChildRule{{Pattern: "end_device-*", Kind: KindEndDevice}},
		},
		KindEndDevice: {
			Kind:       KindEndDevice,
			DataSuffix: "sas_device/{name}",
			Attributes: endDevice,
			Children:   []ChildRule{{Pattern: "target[0-9]*", Kind: KindTarget}},
		},
		KindTarget: {
			Kind:     KindTarget,
			Children: []ChildRule{{Pattern: "[0-9]*", Kind: KindDevice}},
		},
		KindDevice: {
			Kind: KindDevice,
			Attributes: keys(
				"device_blocked",
				"device_busy",
				"dh_state",
				"eh_timeout",
				"evt_capacity_change_reported",
				"evt_inquiry_change_reported",
				"evt_lun_change_reported",
				"evt_media_change",
				"evt_mode_parameter_change_reported",
				"evt_soft_threshold_reached",
				"inquiry",
				"iocounterbits",
				"iodone_cnt",
				"ioerr_cnt",
				"iorequest_cnt",
				"model",
				"queue_depth",
				"queue_ramp_up_period",
				"queue_type",
				"rev",
				"sas_address",
				"sas_device_handle",
				"scsi_level",
				"state",
				"timeout",
				"type",
				"vendor",
				"vpd_pg80",
				"vpd_pg83",
				"wwid",
			),
			Children: []ChildRule{{Pattern: "block/sd*", Kind: KindBlockDevice}},
		},
		KindBlockDevice: {
			Kind: KindBlockDevice,
			Attributes: keys(
				"alignment_offset",
				"badblocks",
				"capability",
				"dev",
				"discard_alignment",
				"ext_range",
				"range",
				"removable",
				"ro",
				"size",
				"stat",
			),
		},
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}
