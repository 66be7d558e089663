package filename

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reliantpm/docfiler/internal/common"
)

// RenameInPlace renames path to newBase within its own directory, keeping the
// original extension. Returns the new path.
func RenameInPlace(path, newBase string) (string, error) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	target, err := uniquePath(filepath.Join(dir, newBase+ext))
	if err != nil {
		return "", err
	}
	if target == path {
		return path, nil
	}
	if err := os.Rename(path, target); err != nil {
		return "", common.NewAppError("FS_RENAME", fmt.Sprintf("rename %q", path), common.ErrFilesystem)
	}
	return target, nil
}

// Relocate moves path into doneDir, creating it if needed. An existing file
// at the destination is never overwritten; a numeric suffix disambiguates.
func Relocate(path, doneDir string) (string, error) {
	if err := os.MkdirAll(doneDir, 0o755); err != nil {
		return "", common.NewAppError("FS_MKDIR", fmt.Sprintf("create %q", doneDir), common.ErrFilesystem)
	}
	target, err := uniquePath(filepath.Join(doneDir, filepath.Base(path)))
	if err != nil {
		return "", err
	}
	if err := os.Rename(path, target); err != nil {
		return "", common.NewAppError("FS_MOVE", fmt.Sprintf("move %q to %q", path, doneDir), common.ErrFilesystem)
	}
	return target, nil
}

// uniquePath returns target if free, otherwise target with "_1", "_2", …
// appended before the extension. Gives up rather than loop forever.
func uniquePath(target string) (string, error) {
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return target, nil
	}
	ext := filepath.Ext(target)
	stem := target[:len(target)-len(ext)]
	for i := 1; i <= 1000; i++ {
		cand := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand, nil
		}
	}
	return "", common.NewAppError("FS_COLLISION", fmt.Sprintf("no free name near %q", target), common.ErrFilesystem)
}
