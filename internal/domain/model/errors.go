//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "errors"

var (
	errNegativeCount = errors.New("counts cannot be negative")
	errPercentRange  = errors.New("percentage must be between 0 and 100")
)
