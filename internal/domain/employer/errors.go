package employer

import "errors"

var ErrNotFound = errors.New("employer not found")
