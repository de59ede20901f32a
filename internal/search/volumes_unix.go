//go:build !windows

package search

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

func discoveryMethods() []rootMethod {
	return []rootMethod{
		{name: "filesystem-root", fn: filesystemRoot},
		{name: "mount-table", fn: mountTableRoots},
		{name: "mountpoint-probe", fn: probeMountDirs},
	}
}

// pseudoFilesystems are mount types that never hold user files.
var pseudoFilesystems = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true,
	"cgroup": true, "cgroup2": true, "tmpfs": true, "securityfs": true,
	"debugfs": true, "tracefs": true, "pstore": true, "bpf": true,
	"mqueue": true, "hugetlbfs": true, "fusectl": true, "configfs": true,
	"autofs": true, "binfmt_misc": true, "overlay": true, "squashfs": true,
	"ramfs": true, "rpc_pipefs": true, "nsfs": true,
}

func filesystemRoot() ([]string, error) {
	return []string{"/"}, nil
}

// mountTableRoots reads /proc/mounts and keeps real filesystems mounted
// outside the pseudo hierarchies.
func mountTableRoots() ([]string, error) {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var roots []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint, fsType := fields[1], fields[2]
		if pseudoFilesystems[fsType] {
			continue
		}
		switch {
		case mountPoint == "/":
		case strings.HasPrefix(mountPoint, "/proc"),
			strings.HasPrefix(mountPoint, "/sys"),
			strings.HasPrefix(mountPoint, "/dev"),
			strings.HasPrefix(mountPoint, "/boot"),
			strings.HasPrefix(mountPoint, "/snap"):
			continue
		}
		// Octal escapes in the mount table (e.g. \040 for space).
		roots = append(roots, unescapeMountPath(mountPoint))
	}
	return roots, scanner.Err()
}

// probeMountDirs checks the conventional removable/secondary mount parents.
// Redundant with the mount table on purpose; it also surfaces mount points
// the table renders unreadable.
func probeMountDirs() ([]string, error) {
	parents := []string{"/mnt", "/media", "/Volumes"}
	if home, err := os.UserHomeDir(); err == nil {
		parents = append(parents, filepath.Join("/run/media", filepath.Base(home)))
	}

	var roots []string
	for _, parent := range parents {
		entries, err := os.ReadDir(parent)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				roots = append(roots, filepath.Join(parent, entry.Name()))
			}
		}
	}
	return roots, nil
}

func unescapeMountPath(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	replacer := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return replacer.Replace(s)
}
