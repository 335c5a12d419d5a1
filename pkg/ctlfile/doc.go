// Package ctlfile exposes the faultd catalog through a control file, the
// shape the procfs-era tooling expects: write a fault name into a file to
// trigger it, read a file to list what is available.
//
// The trigger side is a named pipe; each line written to it is one trigger
// payload, size-limited like the HTTP path. The list side is a sibling
// regular file holding the catalog names, one per line, so plain `cat`
// still answers the list operation. Both are created by Open and removed
// by Close.
package ctlfile
