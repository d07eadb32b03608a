package fixture

import "errors"

var ErrInvalidResult = errors.New("invalid official result")
