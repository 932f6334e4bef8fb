// Package icon finds a usable icon inside an AppImage. The bundle is asked to
// extract itself into a throwaway workspace, the extracted tree is searched
// in a fixed priority order, and the winner is classified as SVG or PNG and
// copied into the user's icon store.
package icon
