package inventoryservice

import (
	"fmt"
	"strings"
)

// Line is the rendered summary of one component kind.
type Line struct {
	Kind Kind
	// Collapsed is set when every record is the same and the line reads
	// "<n> * <description>".
	Collapsed bool
	// Unknown is set when the kind failed to collect in partial mode.
	Unknown bool
	Text    string
	Rows    []Row
}

// Row is one table row: a collapsed group or a single itemized record.
type Row struct {
	Count       int
	Description string
}

func (l Line) String() string {
	return l.Kind.Label() + ": " + l.Text
}

// summarize groups records that share the same display key. A list of
// length one is always homogeneous; an empty list renders as "none".
func summarize[T any, K comparable](
	kind Kind,
	items []T,
	key func(T) K,
	collapsed func(T) string,
	itemized func(T) string,
) Line {
	line := Line{Kind: kind}

	if len(items) == 0 {
		line.Text = "none"
		return line
	}

	if homogeneous(items, key) {
		desc := collapsed(items[0])
		line.Collapsed = true
		line.Text = fmt.Sprintf("%d * %s", len(items), desc)
		line.Rows = []Row{{Count: len(items), Description: desc}}
		return line
	}

	var b strings.Builder
	for _, item := range items {
		desc := itemized(item)
		b.WriteString(desc)
		b.WriteString(",")
		line.Rows = append(line.Rows, Row{Count: 1, Description: desc})
	}
	line.Text = b.String()
	return line
}

func homogeneous[T any, K comparable](items []T, key func(T) K) bool {
	if len(items) <= 1 {
		return true
	}
	first := key(items[0])
	for _, item := range items[1:] {
		if key(item) != first {
			return false
		}
	}
	return true
}

type memoryKey struct {
	capacity uint64
	speed    uint32
}

type diskKey struct {
	media    string
	capacity uint64
}

// SummarizeCPUs compares processors by name.
func SummarizeCPUs(cpus []CPU) Line {
	return summarize(KindCPU, cpus,
		func(c CPU) string { return c.Name },
		func(c CPU) string {
			return fmt.Sprintf("%s,%d核%d线程", c.Name, c.Cores, c.LogicalProcessors)
		},
		func(c CPU) string {
			return fmt.Sprintf("%s %d核%d线程", c.Name, c.Cores, c.LogicalProcessors)
		},
	)
}

// SummarizeMemory compares modules by capacity and speed.
func SummarizeMemory(modules []Memory) Line {
	return summarize(KindMemory, modules,
		func(m Memory) memoryKey { return memoryKey{m.CapacityGiB, m.SpeedMHz} },
		func(m Memory) string {
			return fmt.Sprintf("%dGB,%dMHz,%s", m.CapacityGiB, m.SpeedMHz, m.TypeName)
		},
		func(m Memory) string {
			return fmt.Sprintf("%dGB %dMHz %s", m.CapacityGiB, m.SpeedMHz, m.TypeName)
		},
	)
}

// SummarizeDisks compares disks by media type and bucketed capacity.
func SummarizeDisks(disks []Disk) Line {
	return summarize(KindDisk, disks,
		func(d Disk) diskKey { return diskKey{d.MediaType, d.CapacityGiB} },
		func(d Disk) string { return fmt.Sprintf("%dGB,%s", d.CapacityGiB, d.MediaType) },
		func(d Disk) string { return fmt.Sprintf("%dGB %s", d.CapacityGiB, d.MediaType) },
	)
}

// Summarize renders the line for one kind, or an "unknown" line when that
// kind failed to collect.
func (inv *Inventory) Summarize(k Kind) Line {
	if inv.Failed(k) {
		return Line{Kind: k, Unknown: true, Text: "unknown"}
	}

	switch k {
	case KindCPU:
		return SummarizeCPUs(inv.CPUs)
	case KindMemory:
		return SummarizeMemory(inv.Memory)
	case KindDisk:
		return SummarizeDisks(inv.Disks)
	default:
		return Line{Kind: k, Unknown: true, Text: "unknown"}
	}
}

// Lines renders the CPU, memory and disk lines in that order.
func (inv *Inventory) Lines() []Line {
	lines := make([]Line, 0, len(Kinds))
	for _, k := range Kinds {
		lines = append(lines, inv.Summarize(k))
	}
	return lines
}

// Report is the plain three-line text summary.
func (inv *Inventory) Report() string {
	var b strings.Builder
	for _, l := range inv.Lines() {
		b.WriteString(l.String())
		b.WriteString("\n")
	}
	return b.String()
}
