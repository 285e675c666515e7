package store

// Config tells the store where its files live.
type Config interface {
	BasePath() string
}

// Path is a Config for a fixed directory.
type Path string

// BasePath implements Config.
func (p Path) BasePath() string {
	return string(p)
}
