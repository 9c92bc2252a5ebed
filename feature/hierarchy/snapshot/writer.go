package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stacksync/core/fsutil"
)

// WriteFile exports the snapshot as indented JSON. The write is atomic
// (temp file, fsync, rename) so a crash or a failed run never truncates
// the last good export.
func WriteFile(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}
