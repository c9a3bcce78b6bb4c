// Package provenance builds the archive-relative path of an artifact from
// the chain of ancestor checksums that led to it. It has no dependencies on
// the rest of the pipeline; BuildPath is a pure function of its arguments.
package provenance

import "path"

// BuildPath joins chain and leafName into the artifact's path inside the
// output archive: one directory per ancestor checksum, in descent order,
// followed by the artifact's own leaf name. A root-level artifact (empty
// chain) is stored directly under leafName.
func BuildPath(chain []string, leafName string) string {
	elems := make([]string, 0, len(chain)+1)
	elems = append(elems, chain...)
	elems = append(elems, leafName)
	return path.Join(elems...)
}
