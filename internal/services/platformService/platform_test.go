package platformservice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"

	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
)

func TestNewBackendForOS(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "windows"},
		{"darwin", "darwin"},
		{"linux", "linux"},
	}

	for _, tt := range tests {
		b, err := NewBackendForOS(tt.goos, newMockExecutor(), nil)
		if err != nil {
			t.Fatalf("NewBackendForOS(%q) error: %v", tt.goos, err)
		}
		if b.Name() != tt.want {
			t.Errorf("NewBackendForOS(%q).Name() = %q, want %q", tt.goos, b.Name(), tt.want)
		}
		if len(b.Requirements()) == 0 {
			t.Errorf("%s backend lists no requirements", tt.goos)
		}
	}

	if _, err := NewBackendForOS("plan9", nil, nil); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("NewBackendForOS(plan9) error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestWindowsBackendEndToEnd(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput(commandLine("powershell", "-Command", WindowsCPUQuery), `[
		{"Name": "X", "NumberOfCores": 4, "NumberOfLogicalProcessors": 8},
		{"Name": "X", "NumberOfCores": 4, "NumberOfLogicalProcessors": 8}
	]`)
	mock.setOutput(commandLine("powershell", "-Command", WindowsMemoryQuery), `[
		{"Capacity": 16, "Speed": 3200, "MemoryType": 26},
		{"Capacity": 16, "Speed": 3200, "MemoryType": 26}
	]`)
	mock.setOutput(commandLine("powershell", "-Command", WindowsDiskQuery), `{
		"mediaType": "SSD", "FriendlyName": "Fast Disk", "Size": 1073634446950
	}`)

	inv, err := inventoryservice.NewCollector(NewWindowsBackend(mock)).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	want := "CPU: 2 * X,4核8线程\n" +
		"Memory: 2 * 16GB,3200MHz,DDR4\n" +
		"Disk: 1 * 1000GB,SSD\n"
	if got := inv.Report(); got != want {
		t.Errorf("Report() =\n%s\nwant\n%s", got, want)
	}
	if inv.Platform != "windows" {
		t.Errorf("Platform = %q, want windows", inv.Platform)
	}
}

func TestWindowsBackendDiskFailure(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput(commandLine("powershell", "-Command", WindowsCPUQuery), `{"Name": "X", "NumberOfCores": 4, "NumberOfLogicalProcessors": 8}`)
	mock.setOutput(commandLine("powershell", "-Command", WindowsMemoryQuery), `{"Capacity": 8, "Speed": 2400, "MemoryType": 24}`)
	mock.setError(commandLine("powershell", "-Command", WindowsDiskQuery), &CommandError{Command: "powershell", Err: errors.New("exit status 1")})

	inv, err := inventoryservice.NewCollector(NewWindowsBackend(mock)).Collect(context.Background())
	if err == nil {
		t.Fatal("Collect() succeeded, want error")
	}
	if inv != nil {
		t.Errorf("Collect() returned a partial inventory: %+v", inv)
	}

	var compErr *inventoryservice.ComponentError
	if !errors.As(err, &compErr) || compErr.Kind != inventoryservice.KindDisk {
		t.Errorf("error = %v, want disk ComponentError", err)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Errorf("error = %v, want wrapped CommandError", err)
	}
}

const intelMemoryReport = `Memory:

    Memory Slots:

      ECC: Disabled
      Upgradeable Memory: Yes

        BANK 0/ChannelA-DIMM0:

          Size: 8 GB
          Type: DDR4
          Speed: 2667 MHz
          Status: OK
          Manufacturer: 0x802C

        BANK 2/ChannelB-DIMM0:

          Size: 8 GB
          Type: DDR4
          Speed: 2667 MHz
          Status: OK
          Manufacturer: 0x802C
`

func TestDarwinBackend(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput(commandLine("sh", "-c", DarwinCPUBrandQuery), "Intel(R) Core(TM) i7-9750H CPU @ 2.60GHz\n")
	mock.setOutput(commandLine("sh", "-c", DarwinCPUCoresQuery), "6\n")
	mock.setOutput(commandLine("sh", "-c", DarwinCPUThreadsQuery), "12\n")
	mock.setOutput(commandLine("sh", "-c", DarwinMemoryQuery), intelMemoryReport)
	mock.setOutput(commandLine("sh", "-c", DarwinDiskQuery), `{"MediaName": "APPLE SSD AP0512M", "Size": 500277790720, "Internal": true}`)

	inv, err := inventoryservice.NewCollector(NewDarwinBackend(mock)).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	want := "CPU: 1 * Intel(R) Core(TM) i7-9750H CPU @ 2.60GHz,6核12线程\n" +
		"Memory: 2 * 8GB,2667MHz,DDR4\n" +
		"Disk: 1 * 500GB,SSD\n"
	if got := inv.Report(); got != want {
		t.Errorf("Report() =\n%s\nwant\n%s", got, want)
	}
	for _, m := range inv.Memory {
		if m.TypeCode != 1 {
			t.Errorf("darwin memory TypeCode = %d, want 1", m.TypeCode)
		}
	}
}

func TestDarwinBackendBadCoreCount(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput(commandLine("sh", "-c", DarwinCPUBrandQuery), "Apple M1")
	mock.setOutput(commandLine("sh", "-c", DarwinCPUCoresQuery), "")
	mock.setOutput(commandLine("sh", "-c", DarwinCPUThreadsQuery), "8")

	_, err := NewDarwinBackend(mock).QueryCPU(context.Background())
	var fieldErr *inventoryservice.FieldParseError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("QueryCPU() error = %v, want FieldParseError", err)
	}
	if fieldErr.Field != "machdep.cpu.core_count" {
		t.Errorf("FieldParseError.Field = %q", fieldErr.Field)
	}
}

func TestLinuxBackend(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput(commandLine("lsblk", LinuxDiskArgs...), `{
		"blockdevices": [
			{"name": "nvme0n1", "model": "Samsung SSD 970 EVO Plus 1TB", "size": 1000204886016, "rota": false, "type": "disk"},
			{"name": "sda", "model": "WDC WD20EZRZ", "size": 2000398934016, "rota": true, "type": "disk"},
			{"name": "loop0", "model": null, "size": 58363904, "rota": false, "type": "loop"}
		]
	}`)

	b := NewLinuxBackend(mock, quietLogger())
	b.cpuStats = func(context.Context) ([]cpu.InfoStat, error) {
		return cpuinfo("0", "AMD Ryzen 7 5800X 8-Core Processor", 8, 2), nil
	}
	b.memTotal = func(context.Context) (uint64, error) {
		return 33_554_432_000, nil
	}

	inv, err := inventoryservice.NewCollector(b).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	want := "CPU: 1 * AMD Ryzen 7 5800X 8-Core Processor,8核16线程\n" +
		"Memory: 1 * 32GB,0MHz,Unknown\n" +
		"Disk: 1000GB SSD,2000GB HDD,\n"
	if got := inv.Report(); got != want {
		t.Errorf("Report() =\n%s\nwant\n%s", got, want)
	}
}

func TestLinuxBackendMemoryError(t *testing.T) {
	b := NewLinuxBackend(newMockExecutor(), quietLogger())
	b.memTotal = func(context.Context) (uint64, error) {
		return 0, errors.New("open /proc/meminfo: permission denied")
	}

	if _, err := b.QueryMemory(context.Background()); err == nil {
		t.Error("QueryMemory() succeeded, want error")
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cpuinfo builds the /proc/cpuinfo entries of one package: cores cores with
// threadsPerCore logical processors each.
func cpuinfo(physicalID, model string, cores, threadsPerCore int) []cpu.InfoStat {
	var stats []cpu.InfoStat
	for c := 0; c < cores; c++ {
		for t := 0; t < threadsPerCore; t++ {
			stats = append(stats, cpu.InfoStat{
				PhysicalID: physicalID,
				CoreID:     strconv.Itoa(c),
				ModelName:  model,
				Cores:      1,
			})
		}
	}
	return stats
}

func TestLinuxBackendCPUPackages(t *testing.T) {
	xeon := "Intel(R) Xeon(R) Gold 6130 CPU @ 2.10GHz"
	fromCPUID := inventoryservice.CPU{Name: "cpuid brand", Cores: 6, LogicalProcessors: 12}

	tests := []struct {
		name  string
		stats []cpu.InfoStat
		err   error
		want  []inventoryservice.CPU
	}{
		{
			name:  "two sockets",
			stats: append(cpuinfo("0", xeon, 16, 2), cpuinfo("1", xeon, 16, 2)...),
			want: []inventoryservice.CPU{
				{Name: xeon, Cores: 16, LogicalProcessors: 32},
				{Name: xeon, Cores: 16, LogicalProcessors: 32},
			},
		},
		{
			name: "arm64 without model name or core ids",
			stats: []cpu.InfoStat{
				{CPU: 0}, {CPU: 1}, {CPU: 2}, {CPU: 3},
			},
			want: []inventoryservice.CPU{fromCPUID},
		},
		{
			name: "cpuinfo unreadable",
			err:  errors.New("open /proc/cpuinfo: no such file or directory"),
			want: []inventoryservice.CPU{fromCPUID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewLinuxBackend(newMockExecutor(), quietLogger())
			b.cpuid = func() inventoryservice.CPU { return fromCPUID }
			b.cpuStats = func(context.Context) ([]cpu.InfoStat, error) {
				return tt.stats, tt.err
			}

			got, err := b.QueryCPU(context.Background())
			if err != nil {
				t.Fatalf("QueryCPU() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("QueryCPU() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cpu[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLinuxBackendTwoSocketReport(t *testing.T) {
	xeon := "Intel(R) Xeon(R) Gold 6130 CPU @ 2.10GHz"
	b := NewLinuxBackend(newMockExecutor(), quietLogger())
	b.cpuStats = func(context.Context) ([]cpu.InfoStat, error) {
		return append(cpuinfo("0", xeon, 16, 2), cpuinfo("1", xeon, 16, 2)...), nil
	}

	cpus, err := b.QueryCPU(context.Background())
	if err != nil {
		t.Fatalf("QueryCPU() error: %v", err)
	}
	want := "CPU: 2 * " + xeon + ",16核32线程"
	if got := inventoryservice.SummarizeCPUs(cpus).String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLinuxBackendNoCPUName(t *testing.T) {
	b := NewLinuxBackend(newMockExecutor(), quietLogger())
	b.cpuid = func() inventoryservice.CPU { return inventoryservice.CPU{Cores: 8, LogicalProcessors: 8} }
	b.cpuStats = func(context.Context) ([]cpu.InfoStat, error) { return nil, nil }

	cpus, err := b.QueryCPU(context.Background())
	if err != nil {
		t.Fatalf("QueryCPU() error: %v", err)
	}
	if len(cpus) != 1 || cpus[0].Name != inventoryservice.UnknownType {
		t.Errorf("QueryCPU() = %+v, want one %q record", cpus, inventoryservice.UnknownType)
	}
}

func TestLinuxBackendLogsToInjectedLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := NewLinuxBackend(newMockExecutor(), logger)
	b.memTotal = func(context.Context) (uint64, error) { return 8 << 30, nil }

	if _, err := b.QueryMemory(context.Background()); err != nil {
		t.Fatalf("QueryMemory() error: %v", err)
	}
	if !strings.Contains(logs.String(), "memory total") {
		t.Errorf("memory total not logged to the backend logger:\n%s", logs.String())
	}
}
