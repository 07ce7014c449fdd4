package platformservice

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
	convert "github.com/redjax/hwsum/internal/utils/convert"
)

// LinuxDiskArgs are the lsblk arguments: whole devices only, sizes in bytes.
var LinuxDiskArgs = []string{"-J", "-b", "-d", "-o", "NAME,MODEL,SIZE,ROTA,TYPE"}

// LinuxBackend reads processors from /proc/cpuinfo via gopsutil (cpuid as
// the fallback), total memory via gopsutil and disks from lsblk. Per-module
// memory data on Linux needs root (dmidecode), so memory is reported as a
// single module of the total.
type LinuxBackend struct {
	executor CommandExecutor
	logger   *slog.Logger
	cpuStats func(ctx context.Context) ([]cpu.InfoStat, error)
	cpuid    func() inventoryservice.CPU
	memTotal func(ctx context.Context) (uint64, error)
}

func NewLinuxBackend(executor CommandExecutor, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{
		executor: executor,
		logger:   logger,
		cpuStats: cpu.InfoWithContext,
		cpuid:    cpuidInfo,
		memTotal: virtualMemoryTotal,
	}
}

func (b *LinuxBackend) Name() string { return "linux" }

func (b *LinuxBackend) Requirements() []string { return []string{"lsblk"} }

// QueryCPU returns one record per physical package. When /proc/cpuinfo
// cannot be read the host is reported as a single package from cpuid.
func (b *LinuxBackend) QueryCPU(ctx context.Context) ([]inventoryservice.CPU, error) {
	fallback := b.cpuid()

	stats, err := b.cpuStats(ctx)
	if err != nil || len(stats) == 0 {
		b.logger.Debug("cpu info unavailable, using cpuid", "error", err)
		if fallback.Name == "" {
			fallback.Name = inventoryservice.UnknownType
		}
		return []inventoryservice.CPU{fallback}, nil
	}

	return cpuPackages(stats, fallback), nil
}

func (b *LinuxBackend) QueryMemory(ctx context.Context) ([]inventoryservice.Memory, error) {
	total, err := b.memTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("read total memory: %w", err)
	}
	b.logger.Debug("memory total", "bytes", total, "size", convert.BytesToHumanReadable(total))
	return inventoryservice.MemoryFromTotal(total), nil
}

func (b *LinuxBackend) QueryDisk(ctx context.Context) ([]inventoryservice.Disk, error) {
	out, err := b.executor.Execute(ctx, "lsblk", LinuxDiskArgs...)
	if err != nil {
		return nil, err
	}
	return inventoryservice.ParseLsblkDisks(out)
}

// cpuPackages groups /proc/cpuinfo entries (one per logical processor) by
// physical id, in first-seen order. Cores are the distinct core ids of a
// package; when the kernel reports none, a lone package takes the cpuid
// counts and otherwise every thread counts as a core.
func cpuPackages(stats []cpu.InfoStat, fallback inventoryservice.CPU) []inventoryservice.CPU {
	type pkg struct {
		name    string
		threads int
		cores   map[string]struct{}
	}

	var order []string
	pkgs := make(map[string]*pkg)
	for _, s := range stats {
		p, ok := pkgs[s.PhysicalID]
		if !ok {
			p = &pkg{cores: make(map[string]struct{})}
			pkgs[s.PhysicalID] = p
			order = append(order, s.PhysicalID)
		}
		if p.name == "" {
			p.name = s.ModelName
		}
		p.threads++
		if s.CoreID != "" {
			p.cores[s.CoreID] = struct{}{}
		}
	}

	cpus := make([]inventoryservice.CPU, 0, len(order))
	for _, id := range order {
		p := pkgs[id]

		name := p.name
		if name == "" {
			name = fallback.Name
		}
		if name == "" {
			name = inventoryservice.UnknownType
		}

		threads, cores := uint32(p.threads), uint32(len(p.cores))
		if cores == 0 {
			cores = threads
			if len(order) == 1 && fallback.Cores > 0 {
				cores, threads = fallback.Cores, fallback.LogicalProcessors
			}
		}

		cpus = append(cpus, inventoryservice.CPU{
			Name:              name,
			Cores:             cores,
			LogicalProcessors: threads,
		})
	}
	return cpus
}

func cpuidInfo() inventoryservice.CPU {
	threads := cpuid.CPU.LogicalCores
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	cores := cpuid.CPU.PhysicalCores
	if cores <= 0 {
		cores = threads
	}

	return inventoryservice.CPU{
		Name:              cpuid.CPU.BrandName,
		Cores:             uint32(cores),
		LogicalProcessors: uint32(threads),
	}
}

func virtualMemoryTotal(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}
