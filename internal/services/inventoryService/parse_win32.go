package inventoryservice

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Field names follow the properties selected in the PowerShell queries.
// encoding/json matches keys case-insensitively, so "mediaType" and
// "MediaType" both land in MediaType.

type win32Processor struct {
	Name                      string
	NumberOfCores             uint32
	NumberOfLogicalProcessors uint32
}

type win32PhysicalMemory struct {
	// Capacity is computed as $_.Capacity / 1GB and serialized as a number
	// that may carry a fraction.
	Capacity   float64
	Speed      uint32
	MemoryType uint32
}

type msftPhysicalDisk struct {
	MediaType    json.RawMessage
	FriendlyName string
	Size         uint64
}

// ParseWindowsCPU decodes Win32_Processor objects.
func ParseWindowsCPU(raw string) ([]CPU, error) {
	procs, err := decodeList[win32Processor]("Win32_Processor JSON", raw)
	if err != nil {
		return nil, err
	}

	result := make([]CPU, len(procs))
	for i, p := range procs {
		result[i] = CPU{
			Name:              strings.TrimSpace(p.Name),
			Cores:             p.NumberOfCores,
			LogicalProcessors: p.NumberOfLogicalProcessors,
		}
	}
	return result, nil
}

// ParseWindowsMemory decodes Win32_PhysicalMemory objects and resolves the
// memory type name from its numeric code.
func ParseWindowsMemory(raw string) ([]Memory, error) {
	modules, err := decodeList[win32PhysicalMemory]("Win32_PhysicalMemory JSON", raw)
	if err != nil {
		return nil, err
	}

	result := make([]Memory, len(modules))
	for i, m := range modules {
		if m.Capacity < 0 || math.IsNaN(m.Capacity) {
			return nil, &FieldParseError{
				Field: "Capacity",
				Raw:   fmt.Sprint(m.Capacity),
				Err:   fmt.Errorf("capacity out of range"),
			}
		}
		result[i] = Memory{
			CapacityGiB: uint64(m.Capacity),
			SpeedMHz:    m.Speed,
			TypeCode:    m.MemoryType,
			TypeName:    MemoryTypeName(m.MemoryType),
		}
	}
	return result, nil
}

// ParseWindowsDisk decodes MSFT_PhysicalDisk objects and buckets each
// capacity.
func ParseWindowsDisk(raw string) ([]Disk, error) {
	disks, err := decodeList[msftPhysicalDisk]("Get-PhysicalDisk JSON", raw)
	if err != nil {
		return nil, err
	}

	result := make([]Disk, len(disks))
	for i, d := range disks {
		media, err := parseMediaType(d.MediaType)
		if err != nil {
			return nil, &DecodeError{Source: "Get-PhysicalDisk MediaType", Raw: string(d.MediaType), Err: err}
		}
		result[i] = Disk{
			MediaType:    media,
			FriendlyName: strings.TrimSpace(d.FriendlyName),
			CapacityGiB:  BucketGiB(d.Size),
		}
	}
	return result, nil
}

// parseMediaType accepts the enum name PowerShell usually emits ("SSD") as
// well as the raw numeric code it falls back to on some hosts.
func parseMediaType(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return UnknownType, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "Unspecified") {
			return UnknownType, nil
		}
		return name, nil
	}

	var code int64
	if err := json.Unmarshal(raw, &code); err != nil {
		return "", fmt.Errorf("media type is neither string nor integer")
	}
	return MediaTypeName(code), nil
}
