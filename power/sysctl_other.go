//go:build !freebsd

package power

// NewSysctl returns ErrUnsupported since the ACPI sysctls only exist on
// FreeBSD.
func NewSysctl() (*Sysctl, error) {
	return nil, ErrUnsupported
}
