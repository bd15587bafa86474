// Package format names the document encodings used on disk and on the
// command line.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f = format.FromPath("patches.json")
//
// # Related Packages
//
//   - github.com/signadot/go-mutate/parse - Parse text to values and patches
//   - github.com/signadot/go-mutate/encode - Encode values and patches to text
package format
