package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxLogoSize caps logo files; header images larger than this are almost
// certainly misconfigured paths.
const MaxLogoSize = 10 << 20

// LogoStatus reports whether a configured logo path exists.
type LogoStatus struct {
	Path  string
	Found bool
}

// CheckLogos stats each path without reading it.
func CheckLogos(paths []string) []LogoStatus {
	out := make([]LogoStatus, len(paths))
	for i, p := range paths {
		info, err := os.Stat(p)
		out[i] = LogoStatus{Path: p, Found: err == nil && info.Mode().IsRegular()}
	}
	return out
}

// ReadLogo reads a logo file. Returns ErrLogoNotFound when the path does not
// exist and ErrLogoTooLarge when it exceeds MaxLogoSize.
func ReadLogo(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLogoNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxLogoSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if len(data) > MaxLogoSize {
		return nil, fmt.Errorf("%w: %s", ErrLogoTooLarge, path)
	}
	return data, nil
}
