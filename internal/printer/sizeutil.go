package printer

import "fmt"

// FormatBytes renders a document file size with binary units, e.g. "512 B",
// "1.5 KB", "700.0 MB". Document files top out in the gigabytes, so anything
// larger stays in GB. Negative sizes render as zero.
func FormatBytes(size int64) string {
	if size < 0 {
		size = 0
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	value := float64(size)
	for _, suffix := range []string{"KB", "MB", "GB"} {
		value /= unit
		if value < unit || suffix == "GB" {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%d B", size)
}
