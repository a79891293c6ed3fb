//go:build !unix

package terminal

// Start is not supported on this platform.
func (h *Host) Start(int) error {
	return ErrUnsupported
}

func (h *Host) restore() {}
