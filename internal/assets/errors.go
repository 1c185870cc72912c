package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath is returned for an asset directory that is missing,
	// unreadable, or not a directory.
	ErrInvalidBasePath = errors.New("invalid asset directory")
	ErrAssetRead       = errors.New("failed to read asset")

	// ErrPathTraversal is returned when a symlink inside the asset directory
	// resolves outside of it.
	ErrPathTraversal = errors.New("asset escapes its directory")

	ErrLogoNotFound = errors.New("logo not found")
	ErrLogoTooLarge = errors.New("logo too large")
)
