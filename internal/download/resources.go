package download

import (
	"github.com/shirou/gopsutil/v3/disk"
)

// minFreeDiskBytes is the free-space threshold below which admission logs a
// warning. Advisory only: the download proceeds either way.
const minFreeDiskBytes = 512 * 1024 * 1024

func (s *Service) warnLowDisk(dir string) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return
	}
	if usage.Free < uint64(minFreeDiskBytes) {
		s.logger.Warn("low disk space in download directory",
			"dir", dir, "free_bytes", usage.Free)
	}
}
