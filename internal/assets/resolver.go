package assets

// AssetResolver layers an optional asset directory over the embedded
// bundle. A name missing from the directory falls through to the bundle;
// any other failure (bad name, escape, I/O) is returned as is.
type AssetResolver struct {
	layers []reader
}

// NewAssetResolver returns a resolver over dir and the embedded bundle, or
// over the bundle alone when dir is empty.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if dir != "" {
		fsLoader, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, fsLoader)
	}
	r.layers = append(r.layers, builtin)
	return r, nil
}

func (r *AssetResolver) read(k kind, name string) ([]byte, error) {
	var err error
	for _, layer := range r.layers {
		var data []byte
		if data, err = layer.read(k, name); err == nil || !isMissing(err) {
			return data, err
		}
	}
	return nil, err
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	data, err := load(r, styleKind, name)
	return string(data), err
}

func (r *AssetResolver) LoadTheme(name string) ([]byte, error) {
	return load(r, themeKind, name)
}

// HasCustomLoader reports whether an asset directory is layered on top.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
