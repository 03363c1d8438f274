package tui

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"
)

// Volume is a mounted filesystem offered in the picker.
type Volume struct {
	Device     string
	Mountpoint string
	Fstype     string
	Total      uint64
	Used       uint64
	// Denied marks volumes whose usage could not be read. They stay
	// selectable; the scan itself reports access errors on its own.
	Denied bool
}

// label renders the picker line for a volume.
func (v Volume) label() string {
	if v.Denied {
		return fmt.Sprintf("%s (access denied)", v.Mountpoint)
	}

	return fmt.Sprintf("%s (%s used of %s)", v.Mountpoint,
		humanize.IBytes(v.Used), humanize.IBytes(v.Total))
}

// listVolumes enumerates physical mounted volumes with usage figures.
func listVolumes() ([]Volume, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("listing volumes: %w", err)
	}

	volumes := make([]Volume, 0, len(parts))

	for _, part := range parts {
		vol := Volume{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
		}

		if usage, err := disk.Usage(part.Mountpoint); err != nil {
			vol.Denied = true
		} else {
			vol.Total = usage.Total
			vol.Used = usage.Used
		}

		volumes = append(volumes, vol)
	}

	return volumes, nil
}

// listSubdirs returns the names of the immediate subdirectories of path.
// os.ReadDir sorts by name, so the browser order is stable.
func listSubdirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", path, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}
