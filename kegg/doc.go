// Package kegg builds lookup maps from auxiliary KEGG metadata files:
// pathway-to-KO and lineage-to-KO groupings used to slice trait tables by
// function. The core table machinery never depends on this package.
package kegg
