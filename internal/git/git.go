// Package git is the version-control collaborator: it produces the changed
// path set, unified diff text, and line-delta stats for a revision range.
// Nothing here interprets diff content; that belongs to the corpus and
// engine layers.
package git

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"patrol/internal/model"
)

// RepoRoot returns the git repository root for the given path, or an error
// if the path is not inside a git repository.
func RepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository (or git not installed): %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ChangedPaths returns the paths changed between base and head with their
// change kind. If head is empty the working tree is compared against base.
// Paths are relative to the repository root.
func ChangedPaths(repoRoot, base, head string) ([]model.ChangedPath, error) {
	args := []string{"-C", repoRoot, "diff", "--name-status", "-M", base}
	if head != "" {
		args = append(args, head)
	}
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --name-status %s %s: %w", base, head, err)
	}
	return parseNameStatus(string(out))
}

func parseNameStatus(out string) ([]model.ChangedPath, error) {
	var paths []model.ChangedPath
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed name-status line %q", line)
		}
		status := fields[0]
		path := fields[1]
		kind := model.ChangeModified
		switch {
		case strings.HasPrefix(status, "A"):
			kind = model.ChangeAdded
		case strings.HasPrefix(status, "D"):
			kind = model.ChangeDeleted
		case strings.HasPrefix(status, "R"), strings.HasPrefix(status, "C"):
			// Rename/copy lines carry old and new paths; scan the new one.
			kind = model.ChangeRenamed
			if len(fields) >= 3 {
				path = fields[2]
			}
		}
		paths = append(paths, model.ChangedPath{Path: path, Kind: kind})
	}
	return paths, nil
}

// UnifiedDiff returns unified diff text for exactly the given paths. Callers
// pass the filtered path set so excluded file content is never requested.
// An empty path list yields an empty diff without invoking git.
func UnifiedDiff(repoRoot, base, head string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}
	args := []string{"-C", repoRoot, "diff", "--no-color", base}
	if head != "" {
		args = append(args, head)
	}
	args = append(args, "--")
	args = append(args, paths...)
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", fmt.Errorf("git diff %s %s: %w", base, head, err)
	}
	return string(out), nil
}

// DiffStat returns total added and removed line counts for the given paths
// via numstat. Binary files (reported as "-") are skipped.
func DiffStat(repoRoot, base, head string, paths []string) (added, removed int, err error) {
	if len(paths) == 0 {
		return 0, 0, nil
	}
	args := []string{"-C", repoRoot, "diff", "--numstat", base}
	if head != "" {
		args = append(args, head)
	}
	args = append(args, "--")
	args = append(args, paths...)
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return 0, 0, fmt.Errorf("git diff --numstat %s %s: %w", base, head, err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] == "-" || fields[1] == "-" {
			continue
		}
		a, aerr := strconv.Atoi(fields[0])
		r, rerr := strconv.Atoi(fields[1])
		if aerr != nil || rerr != nil {
			continue
		}
		added += a
		removed += r
	}
	return added, removed, nil
}
