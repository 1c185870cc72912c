// Package assets resolves document themes (YAML) and preview styles (CSS)
// by bare name, and reads header logos.
//
// Themes and styles live under themes/{name}.yaml and styles/{name}.css,
// both in the embedded bundle and in an optional asset directory. An
// AssetResolver consults the directory first and the bundle second, so a
// directory may override one theme and inherit the rest.
//
// Names are restricted to letters, digits, '-' and '_'. Files reached
// through symlinks must resolve inside the asset directory.
package assets
