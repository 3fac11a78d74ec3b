package service

import (
	"fmt"
	"strings"
	"time"
)

func nowUTC() time.Time { return time.Now().UTC() }

func sinceUTC(t time.Time) time.Duration { return nowUTC().Sub(t) }

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
