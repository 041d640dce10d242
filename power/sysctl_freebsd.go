//go:build freebsd

package power

import "golang.org/x/sys/unix"

// NewSysctl returns a Sampler using the ACPI sysctls.
func NewSysctl() (*Sysctl, error) {
	if _, err := unix.SysctlUint32(sysctlACLine); err != nil {
		return nil, &SysctlError{Name: sysctlACLine, Err: err}
	}
	return &Sysctl{get: unix.SysctlUint32}, nil
}
