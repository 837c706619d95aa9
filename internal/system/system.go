package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Resources describes the machine the render runs on.
type Resources struct {
	CPUs            int
	TotalMemory     uint64
	AvailableMemory uint64
}

// Probe queries CPU and memory through gopsutil, falling back to
// runtime.NumCPU when the logical core count is unavailable.
func Probe() Resources {
	res := Resources{CPUs: runtime.NumCPU()}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		res.CPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		res.TotalMemory = vm.Total
		res.AvailableMemory = vm.Available
	}
	return res
}

// DefaultWorkers picks how many frames may be rendered at once. Each frame
// needs about frameBytes of memory; at most half of the available memory is used.
func (r Resources) DefaultWorkers(frameBytes uint64) int {
	workers := r.CPUs
	if workers < 1 {
		workers = 1
	}
	if frameBytes == 0 || r.AvailableMemory == 0 {
		return workers
	}
	byMemory := int(r.AvailableMemory / 2 / frameBytes)
	if byMemory < 1 {
		byMemory = 1
	}
	if byMemory < workers {
		workers = byMemory
	}
	return workers
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".tga", ".webp", ".pdf"}

// IsImagePath reports whether path has an extension the sources can open.
func IsImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindLatestImage возвращает самый свежий по дате изменения файл изображения.
// Если path указывает на файл, поиск идет в его папке.
func FindLatestImage(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	searchDir := path
	if !fi.IsDir() {
		searchDir = filepath.Dir(path)
	}

	files, err := os.ReadDir(searchDir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsImagePath(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(searchDir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no images found in %s", searchDir)
	}

	return latestFile, nil
}
