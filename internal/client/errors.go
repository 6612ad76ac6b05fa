package client

import "errors"

var ErrNilConfig = errors.New("client: sync config is nil")
