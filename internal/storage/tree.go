package storage

import (
	"sort"
	"strings"
)

// TreeResult is the hierarchical projection of a subtree: the root-level
// forest plus aggregate counts over every entry regardless of depth.
type TreeResult struct {
	Tree         []*TreeNode
	TotalFiles   int
	TotalFolders int
}

// Tree builds the nested structure of all entries beneath the folder at
// relativePath (the storage root when empty). Parent/child linkage is
// reconstructed from the flat enumeration by prefix matching: entries are
// processed shallowest first so a parent node always exists before its
// children attach. Each folder's children and the root forest itself are
// sorted folders-first, case-insensitively by name.
func (s *Service) Tree(relativePath string) (*TreeResult, error) {
	base, err := s.listBase(relativePath)
	if err != nil {
		return nil, err
	}

	entries, err := s.walk(base)
	if err != nil {
		return nil, err
	}

	// Depth order is load-bearing: prefix linkage requires parents to be
	// placed before their children.
	sort.SliceStable(entries, func(i, j int) bool {
		di := strings.Count(entries[i].RelativePath, "/")
		dj := strings.Count(entries[j].RelativePath, "/")
		if di != dj {
			return di < dj
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	baseRel := s.relativePath(base)
	nodes := make(map[string]*TreeNode, len(entries))
	roots := []*TreeNode{}
	result := &TreeResult{}

	for _, entry := range entries {
		node := &TreeNode{Entry: entry}
		if entry.Kind == KindFolder {
			node.Children = []*TreeNode{}
			result.TotalFolders++
		} else {
			result.TotalFiles++
		}
		nodes[entry.RelativePath] = node

		parent := parentPath(entry.RelativePath)
		if isForestRoot(parent, baseRel) {
			roots = append(roots, node)
			continue
		}
		if parentNode, ok := nodes[parent]; ok && parentNode.Children != nil {
			parentNode.Children = append(parentNode.Children, node)
		} else {
			// Entries whose parent prefix was not enumerated are kept at
			// the top level rather than dropped.
			roots = append(roots, node)
		}
	}

	sortForest(roots)
	result.Tree = roots
	return result, nil
}

// parentPath strips the final segment of a /-separated relative path.
func parentPath(relativePath string) string {
	idx := strings.LastIndex(relativePath, "/")
	if idx < 0 {
		return ""
	}
	return relativePath[:idx]
}

// isForestRoot reports whether a parent prefix denotes the forest base:
// either the base folder's own relative path or, for the storage root,
// the empty prefix.
func isForestRoot(parent, baseRel string) bool {
	if baseRel == "." {
		return parent == ""
	}
	return parent == baseRel
}

// sortForest orders siblings at every level: folders first, then files,
// case-insensitively alphabetical within each group. Siblings whose names
// differ only by case tie-break on their relative path so repeated builds
// of an unchanged tree agree.
func sortForest(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if (nodes[i].Kind == KindFile) != (nodes[j].Kind == KindFile) {
			return nodes[j].Kind == KindFile
		}
		ni, nj := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if ni != nj {
			return ni < nj
		}
		return strings.ToLower(nodes[i].RelativePath) < strings.ToLower(nodes[j].RelativePath)
	})
	for _, node := range nodes {
		if node.Children != nil {
			sortForest(node.Children)
		}
	}
}
