package handler

import "errors"

var errNoHandlersAreCreated = errors.New("no handlers were created")
