// Package encode writes values and patches as JSON or YAML, optionally
// colored for terminals.
//
// # Usage
//
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//	err = encode.View(patches, os.Stdout, encode.EncodeColors(encode.NewColors()))
//	err = encode.TextDiff(from, to, os.Stdout)
//
// # Related Packages
//
//   - github.com/signadot/go-mutate/parse - Parse text to values and patches
//   - github.com/signadot/go-mutate/format - Format names
package encode
