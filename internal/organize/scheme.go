package organize

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fileman/internal/config"
)

// Scheme maps a file's modification time to a relative destination
// directory. The mapping is pure: the same timestamp always yields the same
// directory.
type Scheme struct {
	name  string
	caser cases.Caser
}

// ParseScheme validates a scheme name and month-label casing from
// configuration or flags.
func ParseScheme(name, monthCase string) (Scheme, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case config.SchemeYearMonth, config.SchemeYearMonthDay, config.SchemeYearMonthName:
	default:
		return Scheme{}, fmt.Errorf("unknown scheme %q", name)
	}
	caser, err := monthCaser(monthCase)
	if err != nil {
		return Scheme{}, err
	}
	return Scheme{name: normalized, caser: caser}, nil
}

// MustScheme is ParseScheme for statically known names; it panics on error.
func MustScheme(name, monthCase string) Scheme {
	scheme, err := ParseScheme(name, monthCase)
	if err != nil {
		panic(err)
	}
	return scheme
}

func monthCaser(monthCase string) (cases.Caser, error) {
	switch strings.ToLower(strings.TrimSpace(monthCase)) {
	case config.MonthCaseUpper:
		return cases.Upper(language.English), nil
	case config.MonthCaseLower:
		return cases.Lower(language.English), nil
	case config.MonthCaseTitle, "":
		return cases.Title(language.English), nil
	default:
		return cases.Caser{}, fmt.Errorf("unknown month case %q", monthCase)
	}
}

func (s Scheme) String() string {
	return s.name
}

// Rel returns the destination directory for a modification time, relative to
// the target root.
func (s Scheme) Rel(t time.Time) string {
	year := fmt.Sprintf("%04d", t.Year())
	month := fmt.Sprintf("%02d", int(t.Month()))
	switch s.name {
	case config.SchemeYearMonthDay:
		return filepath.Join(year, month, fmt.Sprintf("%02d", t.Day()))
	case config.SchemeYearMonthName:
		label := s.caser.String(t.Month().String())
		return filepath.Join(year, month+"-"+label)
	default:
		return filepath.Join(year, month)
	}
}
