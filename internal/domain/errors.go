package domain

import "errors"

var ErrPersistence = errors.New("rates persistence failed")
