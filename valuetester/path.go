package valuetester

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/ojrosten/sequoia-sub007/output"
)

// excludedNames and excludedExtensions are the directory-comparison
// exclusions: version-control noise and the masking sidecars
// themselves are never treated as directory members to compare.
var excludedNames = map[string]bool{
	".DS_Store": true,
	".keep":     true,
}

const seqpatExtension = ".seqpat"

// CheckPath implements the filesystem-path ValueTester: the type of
// entry is checked first, then for regular files the textual content
// (after applying any .seqpat masks), and for directories a recursive
// member-wise comparison after sorting and filtering excluded names.
func CheckPath(description string, logger *checklog.Logger, obtainedPath, predictedPath string) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	oInfo, oErr := os.Lstat(obtainedPath)
	pInfo, pErr := os.Lstat(predictedPath)
	oKind, pKind := entryKind(oInfo, oErr), entryKind(pInfo, pErr)
	if oKind != pKind {
		logger.Fail(fmt.Sprintf("path entry type mismatch at %q: obtained %s, predicted %s\n", description, oKind, pKind))
		return false
	}

	switch oKind {
	case entryMissing:
		return true
	case entryDir:
		return checkDir(description, logger, obtainedPath, predictedPath)
	default:
		return checkFileContent(description, logger, obtainedPath, predictedPath)
	}
}

type entryType int

const (
	entryMissing entryType = iota
	entryFile
	entryDir
	entryOther
)

func (e entryType) String() string {
	switch e {
	case entryMissing:
		return "missing"
	case entryFile:
		return "file"
	case entryDir:
		return "directory"
	default:
		return "other"
	}
}

func entryKind(info os.FileInfo, err error) entryType {
	if err != nil || info == nil {
		return entryMissing
	}
	switch {
	case info.IsDir():
		return entryDir
	case info.Mode().IsRegular():
		return entryFile
	default:
		return entryOther
	}
}

func checkFileContent(description string, logger *checklog.Logger, obtainedPath, predictedPath string) bool {
	obtained, err := os.ReadFile(obtainedPath)
	if err != nil {
		logger.Fail(fmt.Sprintf("could not read obtained file %q: %v\n", obtainedPath, err))
		return false
	}
	predicted, err := os.ReadFile(predictedPath)
	if err != nil {
		logger.Fail(fmt.Sprintf("could not read predicted file %q: %v\n", predictedPath, err))
		return false
	}

	patterns, err := loadSeqpat(predictedPath)
	if err != nil {
		logger.Fail(fmt.Sprintf("could not read .seqpat sidecar for %q: %v\n", predictedPath, err))
		return false
	}

	obtainedText := applyMasks(string(obtained), patterns)
	predictedText := applyMasks(string(predicted), patterns)

	if obtainedText == predictedText {
		return true
	}
	logger.Fail(output.FileDiff(filepath.Base(obtainedPath), predictedText, obtainedText))
	return false
}

// loadSeqpat reads the .seqpat sidecar next to path, if present: one
// regular expression per line.
func loadSeqpat(path string) ([]*regexp.Regexp, error) {
	data, err := os.ReadFile(path + seqpatExtension)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var patterns []*regexp.Regexp
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("invalid .seqpat pattern %q: %w", line, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// applyMasks replaces every pattern match with the empty string.
func applyMasks(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func checkDir(description string, logger *checklog.Logger, obtainedDir, predictedDir string) bool {
	obtainedNames, err := listDir(obtainedDir)
	if err != nil {
		logger.Fail(fmt.Sprintf("could not list obtained directory %q: %v\n", obtainedDir, err))
		return false
	}
	predictedNames, err := listDir(predictedDir)
	if err != nil {
		logger.Fail(fmt.Sprintf("could not list predicted directory %q: %v\n", predictedDir, err))
		return false
	}

	if len(obtainedNames) != len(predictedNames) {
		logger.Fail(fmt.Sprintf(
			"directory member count mismatch at %q: obtained %d, predicted %d\n",
			description, len(obtainedNames), len(predictedNames),
		))
		return false
	}

	allPass := true
	for i, name := range predictedNames {
		if obtainedNames[i] != name {
			logger.Fail(fmt.Sprintf("directory member name mismatch: obtained %q, predicted %q\n", obtainedNames[i], name))
			allPass = false
			continue
		}
		sub := description + "/" + name
		if !CheckPath(sub, logger, filepath.Join(obtainedDir, name), filepath.Join(predictedDir, name)) {
			allPass = false
		}
	}
	return allPass
}

// listDir returns the sorted, filtered member names of dir, excluding
// the names and extension excludedNames/seqpatExtension name.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if excludedNames[name] || strings.HasSuffix(name, seqpatExtension) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
