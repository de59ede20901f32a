//go:build windows

package search

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func discoveryMethods() []rootMethod {
	return []rootMethod{
		{name: "logical-drives", fn: logicalDriveRoots},
		{name: "drive-strings", fn: driveStringRoots},
		{name: "letter-probe", fn: probeLetterRoots},
	}
}

// logicalDriveRoots decodes the GetLogicalDrives bitmask, one bit per letter
// starting at A.
func logicalDriveRoots() ([]string, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, fmt.Errorf("GetLogicalDrives: %w", err)
	}
	var roots []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		if mask&1 != 0 {
			roots = append(roots, string(letter)+`:\`)
		}
		mask >>= 1
	}
	return roots, nil
}

// driveStringRoots asks the OS for mounted drive descriptors and keeps local
// disks and network shares, the drive kinds worth indexing.
func driveStringRoots() ([]string, error) {
	buf := make([]uint16, 512)
	n, err := windows.GetLogicalDriveStrings(uint32(len(buf)), &buf[0])
	if err != nil {
		return nil, fmt.Errorf("GetLogicalDriveStrings: %w", err)
	}
	var roots []string
	for _, root := range splitNulStrings(buf[:n]) {
		p, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		switch windows.GetDriveType(p) {
		case windows.DRIVE_FIXED, windows.DRIVE_REMOTE:
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// probeLetterRoots brute-forces every single-letter root. Redundant with the
// API-based methods on healthy systems, which is the point: it still finds
// drives the APIs misreport.
func probeLetterRoots() ([]string, error) {
	var roots []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err == nil {
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// splitNulStrings splits a REG_MULTI_SZ style UTF-16 buffer.
func splitNulStrings(buf []uint16) []string {
	var out []string
	start := 0
	for i, c := range buf {
		if c == 0 {
			if i > start {
				out = append(out, windows.UTF16ToString(buf[start:i]))
			}
			start = i + 1
		}
	}
	return out
}
