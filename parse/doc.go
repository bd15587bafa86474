// Package parse reads JSON and YAML documents into values and patch
// lists.
//
// YAML mappings keep their order and become records, so the tagged forms
// {"!map": [...]} and {"!set": [...]} read the same in both formats:
//
//	"!set": [1, 2, 3]
//
// # Related Packages
//
//   - github.com/signadot/go-mutate/encode - Encode values and patches to text
//   - github.com/signadot/go-mutate/format - Format names
package parse
