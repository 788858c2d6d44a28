package payroll

import "errors"

var ErrEmptyDataset = errors.New("uploaded dataset has no financial rows")
