package utils

const (
	// NODETOL is the minimum spacing between two break points
	NODETOL = 1.e-9
	// ZEROTOL is the magnitude below which a secant slope counts as flat
	ZEROTOL = 1.e-9
)
