package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// timeValue is a pflag.Value that parses an instant from either an
// RFC3339 timestamp or a plain date (interpreted as UTC midnight). The
// parsed value lands in *target; nil means the flag was not given.
type timeValue struct {
	target **time.Time
}

func newTimeValue(target **time.Time) pflag.Value {
	return &timeValue{target: target}
}

func (v *timeValue) Set(s string) error {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		utc := t.UTC()
		*v.target = &utc
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		utc := t.UTC()
		*v.target = &utc
		return nil
	}
	return fmt.Errorf("invalid time %q: want RFC3339 or yyyy-mm-dd", s)
}

func (v *timeValue) String() string {
	if *v.target == nil {
		return ""
	}
	return (*v.target).Format(time.RFC3339)
}

func (v *timeValue) Type() string {
	return "time"
}

// stringPtrValue is a pflag.Value that records whether a string flag
// was given at all, so commands can distinguish "unset" from "empty".
type stringPtrValue struct {
	target **string
}

func newStringPtrValue(target **string) pflag.Value {
	return &stringPtrValue{target: target}
}

func (v *stringPtrValue) Set(s string) error {
	*v.target = &s
	return nil
}

func (v *stringPtrValue) String() string {
	if *v.target == nil {
		return ""
	}
	return **v.target
}

func (v *stringPtrValue) Type() string {
	return "string"
}
