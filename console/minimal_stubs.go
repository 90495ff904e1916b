//go:build minimal

package console

func NewConsole(options Options) (Console, error) {
	return NewStandardConsole()
}
