package repository

import "errors"

var (
	ErrNilCart          = errors.New("cannot save a nil cart")
	ErrConnectionFailed = errors.New("store connection failed")
)
