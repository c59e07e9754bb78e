package metrics

import (
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	log "github.com/sirupsen/logrus"
)

// Values reported when a reader fails, so the dashboard always renders.
const (
	fallbackPercent = 0.0
	fallbackTemp    = 0.0
)

type SystemMetrics struct {
	Hostname         string    `json:"hostname"`
	UptimeSeconds    uint64    `json:"uptimeSeconds"`
	CPUPercent       float64   `json:"cpuPercent"`
	MemoryPercent    float64   `json:"memoryPercent"`
	MemoryTotalBytes uint64    `json:"memoryTotalBytes"`
	MemoryUsedBytes  uint64    `json:"memoryUsedBytes"`
	DiskPercent      float64   `json:"diskPercent"`
	DiskTotalBytes   uint64    `json:"diskTotalBytes"`
	DiskFreeBytes    uint64    `json:"diskFreeBytes"`
	CPUTempCelsius   float64   `json:"cpuTempCelsius"`
	CollectedAt      time.Time `json:"collectedAt"`
}

// Collect reads the latest system state. Individual readers that fail are
// logged and replaced with fallback values; Collect itself never fails.
func Collect() *SystemMetrics {
	m := &SystemMetrics{
		CPUPercent:     fallbackPercent,
		MemoryPercent:  fallbackPercent,
		DiskPercent:    fallbackPercent,
		CPUTempCelsius: fallbackTemp,
		CollectedAt:    time.Now(),
	}

	if info, err := host.Info(); err != nil {
		log.Warnf("unable to read host info: %v", err)
	} else {
		m.Hostname = info.Hostname
		m.UptimeSeconds = info.Uptime
	}

	if percents, err := cpu.Percent(0, false); err != nil || len(percents) == 0 {
		log.Warnf("unable to read cpu usage: %v", err)
	} else {
		m.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warnf("unable to read memory usage: %v", err)
	} else {
		m.MemoryPercent = vm.UsedPercent
		m.MemoryTotalBytes = vm.Total
		m.MemoryUsedBytes = vm.Used
	}

	if du, err := disk.Usage("/"); err != nil {
		log.Warnf("unable to read disk usage: %v", err)
	} else {
		m.DiskPercent = du.UsedPercent
		m.DiskTotalBytes = du.Total
		m.DiskFreeBytes = du.Free
	}

	m.CPUTempCelsius = cpuTemperature()

	return m
}

// cpuTemperature picks the CPU package sensor when one is present, otherwise
// the first sensor reporting anything.
func cpuTemperature() float64 {
	sensors, err := host.SensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return fallbackTemp
	}

	for _, s := range sensors {
		key := strings.ToLower(s.SensorKey)
		if strings.Contains(key, "coretemp") || strings.Contains(key, "cpu") || strings.Contains(key, "k10temp") {
			if s.Temperature > 0 {
				return s.Temperature
			}
		}
	}

	for _, s := range sensors {
		if s.Temperature > 0 {
			return s.Temperature
		}
	}

	return fallbackTemp
}
