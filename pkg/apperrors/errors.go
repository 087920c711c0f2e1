package apperrors

import "errors"

var ErrMalformedDataset = errors.New("dataset column metadata is malformed")
