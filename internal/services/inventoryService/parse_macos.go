package inventoryservice

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// darwinMemoryTypeCode is stored on every module read from system_profiler,
// which names the type directly instead of reporting a numeric code.
const darwinMemoryTypeCode = 1

// ParseDarwinCPU builds the single CPU record from the three sysctl values
// (machdep.cpu.brand_string, core_count, thread_count).
func ParseDarwinCPU(brand, cores, threads string) ([]CPU, error) {
	coreCount, err := parseUint32("machdep.cpu.core_count", cores)
	if err != nil {
		return nil, err
	}
	threadCount, err := parseUint32("machdep.cpu.thread_count", threads)
	if err != nil {
		return nil, err
	}

	return []CPU{{
		Name:              strings.TrimSpace(brand),
		Cores:             coreCount,
		LogicalProcessors: threadCount,
	}}, nil
}

func parseUint32(field, raw string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, &FieldParseError{Field: field, Raw: raw, Err: err}
	}
	return uint32(v), nil
}

// ParseDarwinMemory reads per-module size, type and speed from the text
// report of `system_profiler SPMemoryDataType`.
//
// Intel Macs list one block per slot:
//
//	Size: 8 GB
//	Type: DDR4
//	Speed: 2667 MHz
//
// Apple silicon reports a single unified block ("Memory: 16 GB" followed by
// "Type: LPDDR5") without a speed. Empty slots ("Size: Empty") are skipped.
// Missing or unparsable values default to zero, and an empty type name to
// UnknownType.
func ParseDarwinMemory(report string) []Memory {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(report), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}

	var result []Memory
	for i := 0; i < len(lines); i++ {
		capacity, ok := moduleStart(lines[i], len(result) == 0)
		if !ok {
			continue
		}

		m := Memory{CapacityGiB: capacity, TypeCode: darwinMemoryTypeCode}
		for j := i + 1; j < len(lines); j++ {
			if strings.HasPrefix(lines[j], "Size:") {
				break
			}
			switch {
			case strings.HasPrefix(lines[j], "Type:") && m.TypeName == "":
				m.TypeName = secondToken(lines[j])
			case strings.HasPrefix(lines[j], "Speed:") && m.SpeedMHz == 0:
				if v, err := strconv.ParseUint(secondToken(lines[j]), 10, 32); err == nil {
					m.SpeedMHz = uint32(v)
				}
			}
		}
		if m.TypeName == "" {
			m.TypeName = UnknownType
		}
		result = append(result, m)
	}

	if result == nil {
		return []Memory{}
	}
	return result
}

// moduleStart reports whether a trimmed line opens a memory module block and
// returns its capacity in GB. The unified "Memory: N GB" form is only
// accepted before any slot has been found.
func moduleStart(line string, allowUnified bool) (uint64, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}

	switch {
	case fields[0] == "Size:":
	case fields[0] == "Memory:" && allowUnified:
		if _, err := strconv.ParseUint(fields[1], 10, 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	if strings.EqualFold(fields[1], "Empty") {
		return 0, false
	}

	capacity, _ := strconv.ParseUint(fields[1], 10, 64)
	if len(fields) > 2 && strings.EqualFold(fields[2], "MB") {
		capacity /= 1024
	}
	return capacity, true
}

func secondToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// diskutilInfo is the subset of `diskutil info -plist` we need, after
// conversion to JSON by plutil.
type diskutilInfo struct {
	MediaName *string `json:"MediaName"`
	Size      *uint64 `json:"Size"`
}

// ParseDarwinDisk decodes the plist-as-JSON disk description. The media type
// is inferred from the media name since diskutil reports no media kind
// that covers every controller.
func ParseDarwinDisk(raw string) ([]Disk, error) {
	var info diskutilInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, &DecodeError{Source: "diskutil plist", Raw: raw, Err: err}
	}
	if info.MediaName == nil {
		return nil, &DecodeError{Source: "diskutil plist", Raw: raw, Err: fmt.Errorf("MediaName: %w", ErrNoComponents)}
	}
	if info.Size == nil {
		return nil, &DecodeError{Source: "diskutil plist", Raw: raw, Err: fmt.Errorf("Size: %w", ErrNoComponents)}
	}

	media := UnknownType
	if strings.Contains(*info.MediaName, "SSD") {
		media = "SSD"
	}

	return []Disk{{
		MediaType:    media,
		FriendlyName: strings.TrimSpace(*info.MediaName),
		CapacityGiB:  BucketGiB(*info.Size),
	}}, nil
}
