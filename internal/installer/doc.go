// Package installer sequences an AppImage install: validate the request,
// derive the display name and slug, copy the bundle, find or copy an icon,
// write the launcher and the menu entry, and record what was written.
//
// Steps up to and including the bundle copy abort the run on failure and
// leave menu and icon state untouched. Icon problems are logged and the
// bundle itself is used as the icon. Launcher and descriptor failures abort
// the run but do not roll back the copied bundle.
package installer
