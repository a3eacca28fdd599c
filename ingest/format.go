package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

const ellipsis = "..."

// TruncatePath shortens a path to maxLen for progress output. Leading
// directories are dropped whole; a file name that alone is too long keeps
// its beginning.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[:maxLen]
	}

	room := maxLen - len(ellipsis)
	base := filepath.Base(path)
	if len(base) > room {
		return base[:room] + ellipsis
	}
	tail := path[len(path)-room:]
	if i := strings.IndexRune(tail, filepath.Separator); i >= 0 {
		tail = tail[i:]
	}
	return ellipsis + tail
}

// FormatBytes formats a size with binary units.
func FormatBytes(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	size := float64(bytes) / 1024
	units := []string{"KB", "MB", "GB"}
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

// FormatTokens formats an estimated token count.
func FormatTokens(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("~%d tokens", tokens)
	case tokens < 10000:
		return fmt.Sprintf("~%.1fk tokens", float64(tokens)/1000)
	default:
		return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
	}
}
