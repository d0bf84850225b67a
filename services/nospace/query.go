// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package nospace

import (
	"fmt"
	"math/big"

	"github.com/AleutianAI/aoc/pkg/puzzle"
	"github.com/AleutianAI/aoc/services/fstree"
)

// Disk describes the device the transcript was captured on.
type Disk struct {
	// TotalSpace is the capacity of the device.
	TotalSpace *big.Int

	// UpdateSpace is the free space the update needs.
	UpdateSpace *big.Int

	// SmallDirLimit is the exclusive size bound for a "small" directory.
	SmallDirLimit *big.Int
}

// DefaultDisk returns the puzzle's device: 70000000 total, 30000000 needed
// for the update, and directories under 100000 counted as small.
func DefaultDisk() Disk {
	return Disk{
		TotalSpace:    big.NewInt(70_000_000),
		UpdateSpace:   big.NewInt(30_000_000),
		SmallDirLimit: big.NewInt(100_000),
	}
}

// SmallDirectoriesTotal sums the sizes of every directory, root included,
// whose size is strictly below limit. Nested directories are counted once
// each, so their files may contribute more than once.
func SmallDirectoriesTotal(tree *fstree.Tree, limit *big.Int) (*big.Int, error) {
	matches := fstree.NewCursor(tree).BrowseFromRoot(
		fstree.All(fstree.IsDirectory, fstree.SizeBelow(limit)),
	)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no directory smaller than %s", puzzle.ErrNoSolution, limit)
	}

	total := new(big.Int)
	for _, id := range matches {
		total.Add(total, tree.Size(id))
	}
	return total, nil
}

// SmallestDeletable returns the size of the smallest directory whose removal
// frees enough space for the update.
//
// Fails with puzzle.ErrDiskState when the tree uses more than the disk holds
// or when the disk already has room for the update, and with
// puzzle.ErrNoSolution when no directory is large enough.
func SmallestDeletable(tree *fstree.Tree, disk Disk) (*big.Int, error) {
	used := tree.Size(tree.Root())
	if used.Cmp(disk.TotalSpace) > 0 {
		return nil, fmt.Errorf("%w: used space %s exceeds total space %s",
			puzzle.ErrDiskState, used, disk.TotalSpace)
	}

	free := new(big.Int).Sub(disk.TotalSpace, used)
	if free.Cmp(disk.UpdateSpace) >= 0 {
		return nil, fmt.Errorf("%w: free space %s already covers the update (%s)",
			puzzle.ErrDiskState, free, disk.UpdateSpace)
	}
	required := new(big.Int).Sub(disk.UpdateSpace, free)

	matches := fstree.NewCursor(tree).BrowseFromRoot(
		fstree.All(fstree.IsDirectory, fstree.SizeAtLeast(required)),
	)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no directory of at least %s", puzzle.ErrNoSolution, required)
	}

	var smallest *big.Int
	for _, id := range matches {
		if size := tree.Size(id); smallest == nil || size.Cmp(smallest) < 0 {
			smallest = size
		}
	}
	return smallest, nil
}
