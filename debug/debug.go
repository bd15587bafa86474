package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Draft  bool
	Record bool
	Patch  bool
	Diff   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Draft = boolEnv("MUT_DEBUG_DRAFT")
	d.Record = boolEnv("MUT_DEBUG_RECORD")
	d.Patch = boolEnv("MUT_DEBUG_PATCH")
	d.Diff = boolEnv("MUT_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Draft() bool {
	return d.Draft
}
func Record() bool {
	return d.Record
}
func Patch() bool {
	return d.Patch
}
func Diff() bool {
	return d.Diff
}
