//go:build release

package footer

func (f Footer) leftContent() string {
	return f.renderHints()
}
