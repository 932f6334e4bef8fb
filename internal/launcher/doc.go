// Package launcher renders the wrapper script that starts an installed
// bundle. The script makes at most two attempts: a normal launch, then one
// retry with a compatibility flag (by default --no-sandbox, for Electron
// apps whose sandbox helper cannot run from a user install). When the
// dynamic linker cache does not list libfuse.so.2, the script asks the
// bundle to extract-and-run instead of mounting itself.
package launcher
