package inventoryservice

// UnknownType is used for memory types and disk media the platform does not name.
const UnknownType = "Unknown"

// memoryTypeNames maps the SMBIOS/WMI Win32_PhysicalMemory.MemoryType
// enumeration to a display name.
var memoryTypeNames = map[uint32]string{
	20: "DDR",
	21: "DDR2",
	22: "DDR2 FB-DIMM",
	23: "DDR3",
	24: "DDR3",
	25: "FBD2",
	26: "DDR4",
}

// MemoryTypeName resolves a numeric memory type code. Codes outside the
// table resolve to UnknownType.
func MemoryTypeName(code uint32) string {
	if name, ok := memoryTypeNames[code]; ok {
		return name
	}
	return UnknownType
}

// mediaTypeCodes maps MSFT_PhysicalDisk.MediaType values, which PowerShell
// emits as numbers when the property is not expanded to its enum name.
var mediaTypeCodes = map[int64]string{
	0: UnknownType,
	3: "HDD",
	4: "SSD",
	5: "SCM",
}

// MediaTypeName resolves a numeric disk media type code.
func MediaTypeName(code int64) string {
	if name, ok := mediaTypeCodes[code]; ok {
		return name
	}
	return UnknownType
}
