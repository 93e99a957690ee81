// Package version implements VersionDetector (spec.md §4.1): inspect a
// ChainInfo's extrinsic descriptor and yield the extrinsic format
// version {4,5} the encoder should target.
package version

import "github.com/justkawal/polkadart/chaininfo"

// Detect returns 5 when the extrinsic descriptor is V16 metadata and
// advertises version 5 among its supported versions; 4 otherwise.
// V14/V15 metadata always yields 4.
func Detect(info chaininfo.ChainInfo) int {
	desc := info.Extrinsic()
	if desc.MetadataVersion() == 16 {
		if versions := desc.Versions(); versions[5] {
			return 5
		}
	}
	return 4
}
