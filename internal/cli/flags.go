package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to the allowed values of T.
type enumValue[T ~string] struct {
	target  *T
	allowed []T
	name    string
}

var _ pflag.Value = (*enumValue[domain.TaskStatus])(nil)

func newEnumValue[T ~string](target *T, def T, allowed []T, name string) *enumValue[T] {
	*target = def
	return &enumValue[T]{target: target, allowed: allowed, name: name}
}

func (e *enumValue[T]) String() string { return string(*e.target) }

func (e *enumValue[T]) Set(s string) error {
	v, err := domain.ParseEnum(strings.ToLower(strings.TrimSpace(s)), e.allowed)
	if err != nil {
		return err
	}
	*e.target = v
	return nil
}

func (e *enumValue[T]) Type() string { return e.name }

// usage lists the allowed values for flag help text.
func (e *enumValue[T]) usage(prefix string) string {
	parts := make([]string, len(e.allowed))
	for i, a := range e.allowed {
		parts[i] = string(a)
	}
	return fmt.Sprintf("%s (%s)", prefix, strings.Join(parts, "|"))
}

func enumFlag[T ~string](fs *pflag.FlagSet, target *T, name string, def T, allowed []T, usage string) {
	v := newEnumValue(target, def, allowed, name)
	fs.Var(v, name, v.usage(usage))
}

// monthValue parses YYYY-MM into the first of that month, local time.
type monthValue struct {
	target *time.Time
}

func (m *monthValue) String() string {
	if m.target.IsZero() {
		return ""
	}
	return m.target.Format("2006-01")
}

func (m *monthValue) Set(s string) error {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("month must use YYYY-MM")
	}
	*m.target = t
	return nil
}

func (m *monthValue) Type() string { return "month" }

// dateValue parses YYYY-MM-DD, local time.
type dateValue struct {
	target *time.Time
}

func (d *dateValue) String() string {
	if d.target.IsZero() {
		return ""
	}
	return d.target.Format(domain.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("date must use YYYY-MM-DD")
	}
	*d.target = t
	return nil
}

func (d *dateValue) Type() string { return "date" }
