package models

import (
	"fmt"
	"strings"
)

// Network is one access point seen during a scan.
type Network struct {
	ID     string
	Signal int
}

// ScanSnapshot is the full result of one scan.
type ScanSnapshot []Network

// Text renders the snapshot as newline-delimited "<id>: <signal>" lines.
func (s ScanSnapshot) Text() string {
	var b strings.Builder
	for _, n := range s {
		fmt.Fprintf(&b, "%s: %d\n", n.ID, n.Signal)
	}
	return b.String()
}

// Contains reports whether a network with the given id and signal is in the snapshot.
func (s ScanSnapshot) Contains(id string, signal int) bool {
	for _, n := range s {
		if n.ID == id && n.Signal == signal {
			return true
		}
	}
	return false
}
