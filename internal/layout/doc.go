// Package layout resolves the user-owned directories an install writes to:
// the bundle directory, the freedesktop applications and icons directories,
// and the local bin directory that holds launchers. Each one can be moved
// with an APPIMAGE_INSTALL_* environment variable, which is how the tests
// keep everything under a temp dir.
package layout
