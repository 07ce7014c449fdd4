package inventoryservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// lsblkOutput is the document printed by `lsblk -J -b -d -o NAME,MODEL,SIZE,ROTA,TYPE`.
type lsblkOutput struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name  string   `json:"name"`
	Model *string  `json:"model"`
	Size  flexUint `json:"size"`
	Rota  flexBool `json:"rota"`
	Type  string   `json:"type"`
}

// flexUint accepts both a JSON number and a quoted number; util-linux
// releases before 2.33 quote every value.
type flexUint uint64

func (f *flexUint) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*f = flexUint(v)
	return nil
}

// flexBool accepts true/false as well as the "0"/"1" strings of older lsblk.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "true", "1":
		*f = true
	case "false", "0", "null", "":
		*f = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// ParseLsblkDisks decodes lsblk JSON. Only whole disks are kept; rotational
// devices are reported as HDD and the rest as SSD.
func ParseLsblkDisks(raw string) ([]Disk, error) {
	var out lsblkOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &DecodeError{Source: "lsblk JSON", Raw: raw, Err: err}
	}

	result := []Disk{}
	for _, dev := range out.BlockDevices {
		if dev.Type != "" && dev.Type != "disk" {
			continue
		}
		if dev.Size == 0 {
			continue
		}

		name := dev.Name
		if dev.Model != nil && strings.TrimSpace(*dev.Model) != "" {
			name = strings.TrimSpace(*dev.Model)
		}

		media := "SSD"
		if dev.Rota {
			media = "HDD"
		}

		result = append(result, Disk{
			MediaType:    media,
			FriendlyName: name,
			CapacityGiB:  BucketGiB(uint64(dev.Size)),
		})
	}
	return result, nil
}

// MemoryFromTotal describes a host whose only memory figure is the total
// usable RAM. The total is rounded up to whole GiB since the kernel hides
// its reserved pages from it.
func MemoryFromTotal(totalBytes uint64) []Memory {
	if totalBytes == 0 {
		return []Memory{}
	}
	const gib = 1 << 30
	return []Memory{{
		CapacityGiB: (totalBytes + gib - 1) / gib,
		TypeName:    UnknownType,
	}}
}
