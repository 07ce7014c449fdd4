package inventoryservice

import "time"

// Kind identifies one of the three component kinds an inventory holds.
type Kind int

const (
	KindCPU Kind = iota
	KindMemory
	KindDisk
)

// Kinds lists every component kind in report order.
var Kinds = []Kind{KindCPU, KindMemory, KindDisk}

func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindMemory:
		return "memory"
	case KindDisk:
		return "disk"
	default:
		return "unknown"
	}
}

// Label is the prefix printed in front of a kind's report line.
func (k Kind) Label() string {
	switch k {
	case KindCPU:
		return "CPU"
	case KindMemory:
		return "Memory"
	case KindDisk:
		return "Disk"
	default:
		return "Unknown"
	}
}

// ParseKind accepts the names used on the command line (cpu, memory/mem, disk).
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "cpu":
		return KindCPU, true
	case "memory", "mem":
		return KindMemory, true
	case "disk", "disks":
		return KindDisk, true
	}
	return 0, false
}

// CPU is one physical processor package.
type CPU struct {
	Name              string `json:"name"`
	Cores             uint32 `json:"cores"`
	LogicalProcessors uint32 `json:"logical_processors"`
}

// Memory is one physical memory module.
// TypeName is derived from TypeCode (or read as a string on backends that
// report the name directly) and is never empty once a parser returns it.
type Memory struct {
	CapacityGiB uint64 `json:"capacity_gib"`
	SpeedMHz    uint32 `json:"speed_mhz"`
	TypeCode    uint32 `json:"type_code"`
	TypeName    string `json:"type_name"`
}

// Disk is one physical storage device. CapacityGiB is always a bucketed size.
type Disk struct {
	MediaType    string `json:"media_type"`
	FriendlyName string `json:"friendly_name"`
	CapacityGiB  uint64 `json:"capacity_gib"`
}

// Inventory is the snapshot produced by one collection pass.
type Inventory struct {
	ID          string    `json:"id"`
	Hostname    string    `json:"hostname"`
	Platform    string    `json:"platform"`
	CollectedAt time.Time `json:"collected_at"`

	CPUs   []CPU    `json:"cpus"`
	Memory []Memory `json:"memory"`
	Disks  []Disk   `json:"disks"`

	// Failures is only populated when collecting in partial mode.
	Failures map[Kind]error `json:"-"`
}

// Failed reports whether the given kind could not be collected.
func (inv *Inventory) Failed(k Kind) bool {
	_, ok := inv.Failures[k]
	return ok
}
