package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// formatByExt maps lowercase file extensions to import formats.
var formatByExt = map[string]Format{
	".csv":   FormatCSV,
	".jsonl": FormatJSONL,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
}

// ScanDir walks dir and discovers every importable transaction file.
// A missing directory yields no files and no error. Results are sorted by path.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if df, ok := discover(dir); ok {
			return []DiscoveredFile{df}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if df, ok := discover(path); ok {
			files = append(files, df)
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func discover(path string) (DiscoveredFile, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return DiscoveredFile{}, false
	}
	format, ok := formatByExt[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return DiscoveredFile{}, false
	}
	return DiscoveredFile{Path: path, Name: name, Format: format}, true
}

// CountFormats returns how many discovered files use each format.
func CountFormats(files []DiscoveredFile) map[Format]int {
	counts := make(map[Format]int)
	for _, f := range files {
		counts[f.Format]++
	}
	return counts
}
