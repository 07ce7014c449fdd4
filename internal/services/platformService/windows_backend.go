package platformservice

import (
	"context"

	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
)

// PowerShell queries. The strings are run verbatim against WMI / Storage
// cmdlets and must keep their exact property selections.
const (
	WindowsCPUQuery    = "Get-WmiObject -Class Win32_Processor | select Name,NumberOfCores,NumberOfLogicalProcessors | ConvertTo-Json"
	WindowsMemoryQuery = "Get-WmiObject -Class Win32_PhysicalMemory | Select-Object @{Name='Capacity'; Expression={$_.Capacity / 1GB}}, Speed, MemoryType | ConvertTo-Json"
	WindowsDiskQuery   = "Get-PhysicalDisk |select mediaType,FriendlyName,Size | ConvertTo-Json"
)

// WindowsBackend asks WMI for processors, memory modules and physical disks
// through PowerShell and parses the JSON it prints.
type WindowsBackend struct {
	executor CommandExecutor
}

func NewWindowsBackend(executor CommandExecutor) *WindowsBackend {
	return &WindowsBackend{executor: executor}
}

func (b *WindowsBackend) Name() string { return "windows" }

func (b *WindowsBackend) Requirements() []string { return []string{"powershell"} }

func (b *WindowsBackend) powershell(ctx context.Context, query string) (string, error) {
	return b.executor.Execute(ctx, "powershell", "-Command", query)
}

func (b *WindowsBackend) QueryCPU(ctx context.Context) ([]inventoryservice.CPU, error) {
	out, err := b.powershell(ctx, WindowsCPUQuery)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseWindowsCPU(out)
}

func (b *WindowsBackend) QueryMemory(ctx context.Context) ([]inventoryservice.Memory, error) {
	out, err := b.powershell(ctx, WindowsMemoryQuery)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseWindowsMemory(out)
}

func (b *WindowsBackend) QueryDisk(ctx context.Context) ([]inventoryservice.Disk, error) {
	out, err := b.powershell(ctx, WindowsDiskQuery)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseWindowsDisk(out)
}
