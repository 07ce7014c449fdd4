package platformservice

import (
	"context"

	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
)

// Shell pipelines run through `sh -c`.
const (
	DarwinCPUBrandQuery   = "sysctl -n machdep.cpu.brand_string"
	DarwinCPUCoresQuery   = "sysctl -n machdep.cpu.core_count"
	DarwinCPUThreadsQuery = "sysctl -n machdep.cpu.thread_count"
	DarwinMemoryQuery     = "system_profiler SPMemoryDataType"
	DarwinDiskQuery       = "diskutil info -plist /dev/disk0 | plutil -convert json -o - -"
)

// DarwinBackend reads CPU facts from sysctl, memory modules from the
// system_profiler text report and the boot disk from diskutil.
type DarwinBackend struct {
	executor CommandExecutor
}

func NewDarwinBackend(executor CommandExecutor) *DarwinBackend {
	return &DarwinBackend{executor: executor}
}

func (b *DarwinBackend) Name() string { return "darwin" }

func (b *DarwinBackend) Requirements() []string {
	return []string{"sh", "sysctl", "system_profiler", "diskutil", "plutil"}
}

func (b *DarwinBackend) sh(ctx context.Context, command string) (string, error) {
	return b.executor.Execute(ctx, "sh", "-c", command)
}

func (b *DarwinBackend) QueryCPU(ctx context.Context) ([]inventoryservice.CPU, error) {
	brand, err := b.sh(ctx, DarwinCPUBrandQuery)
	if err != nil {
		return nil, err
	}
	cores, err := b.sh(ctx, DarwinCPUCoresQuery)
	if err != nil {
		return nil, err
	}
	threads, err := b.sh(ctx, DarwinCPUThreadsQuery)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseDarwinCPU(brand, cores, threads)
}

func (b *DarwinBackend) QueryMemory(ctx context.Context) ([]inventoryservice.Memory, error) {
	out, err := b.sh(ctx, DarwinMemoryQuery)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseDarwinMemory(out), nil
}

func (b *DarwinBackend) QueryDisk(ctx context.Context) ([]inventoryservice.Disk, error) {
	out, err := b.sh(ctx, DarwinDiskQuery)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseDarwinDisk(out)
}
