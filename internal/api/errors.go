package api

import (
	"errors"
	"fmt"
)

var errMissingFile = errors.New("upload requires a filename and content")

func errUnknownReport(kind ReportKind) error {
	return fmt.Errorf("unknown report %q", kind)
}
