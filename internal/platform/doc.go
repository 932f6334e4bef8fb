// Package platform provides the filesystem primitives the installer builds on:
// permission changes, executable bits, existence checks and file copies.
// Everything goes through an afero.Fs so the same code runs against the real
// disk and an in-memory filesystem in tests.
package platform
