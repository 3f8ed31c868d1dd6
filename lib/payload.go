package lib

import (
	"encoding/json"
	"fmt"
)

// JSONPayloadSize reports how many bytes v occupies once serialized the same
// way the catalog file is committed (indented, two spaces).
func JSONPayloadSize(v any) (int64, error) {
	serialized, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to serialize payload: %w", err)
	}
	return int64(len(serialized)), nil
}

// FormatBytes renders a byte count as a human-readable MiB string.
func FormatBytes(n int64) string {
	const mib = 1024 * 1024
	if n < mib {
		return fmt.Sprintf("%.1f KiB", float64(n)/1024)
	}
	return fmt.Sprintf("%.2f MiB", float64(n)/mib)
}
