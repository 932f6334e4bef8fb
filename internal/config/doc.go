// Package config manages user-level settings stored at ~/.appimage-install/config.yaml.
// Values can also come from APPIMAGE_INSTALL_* environment variables. The
// settings cover the parts of an install that users tend to want to change:
// default menu categories, the launcher file suffix, and the launcher's
// compatibility flag and FUSE fallback.
package config
