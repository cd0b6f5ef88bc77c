// ABOUTME: Fixed-point pruning of empty directories under a category root
// ABOUTME: Collects candidates per pass, deletes after, rescans until stable

package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// pruneEmptyDirs deletes every empty directory below root, never root
// itself. Deleting a child can make its parent newly empty, so the scan
// repeats until a pass deletes nothing. Candidates are collected before any
// deletion so the walk never mutates the tree it is traversing; each pass
// removes at least one directory, bounding the loop by tree depth.
func pruneEmptyDirs(root string) error {
	for {
		var empty []string
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() || path == root {
				return nil
			}
			entries, err := os.ReadDir(path)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				empty = append(empty, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scanning %s for empty directories: %w", root, err)
		}
		if len(empty) == 0 {
			return nil
		}
		for _, dir := range empty {
			if err := os.Remove(dir); err != nil {
				return fmt.Errorf("pruning %s: %w", dir, err)
			}
		}
	}
}
