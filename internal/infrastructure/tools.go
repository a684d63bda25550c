package infrastructure

import "os/exec"

// PathTools implements domain.ToolPort via PATH lookup.
type PathTools struct{}

func NewPathTools() *PathTools {
	return &PathTools{}
}

func (PathTools) Available(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}
