// Package checkflags holds the compatibility switches and debug knobs that
// select between two versions of a given algorithm (spec §6) or control
// diagnostic verbosity. It mirrors the teacher's internal/cuedebug +
// internal/envflag pair: a struct of fields parsed from a single
// comma-separated environment variable, with per-field defaults declared
// via struct tags.
package checkflags

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Config holds the set of known MIZAR_DEBUG flags plus the three logic
// compatibility switches named in spec §6.
type Config struct {
	// Strict enables extra-aggressive internal invariant checking; when
	// set, a violated invariant panics instead of degrading silently
	// (spec §7 "programming-error conditions").
	Strict bool `envflag:"default:true"`

	// LogEval sets the verbosity of the checker driver's conjunct logging.
	//	0: no logging
	//	1 or more: one line per Justify call, plus one line per DNF
	//	conjunct (its atom ids and signs) before it is processed
	// Levels above 1 add no further output.
	LogEval int

	// LegacyFlexHandling keeps the pre-expansion FlexAnd conjunct
	// alongside its unfolded range instead of dropping it once unfolded.
	// See DESIGN.md, Open Question 1 (distinct from FlexExpansionBug,
	// which governs the scope-shift convention below).
	LegacyFlexHandling bool

	// AttrSortBug reproduces the historical Attrs tie-break: facts with the
	// same constructor number and sign are ordered by argument count only,
	// instead of by a structural comparison of their arguments. See
	// DESIGN.md, Open Question 2.
	AttrSortBug bool

	// FlexExpansionBug reproduces the historical off-by-one in selecting
	// the flex body's scope during expansion. See DESIGN.md, Open
	// Question 1.
	FlexExpansionBug bool
}

// Flags holds the process-wide set of flags, initialized from MIZAR_DEBUG.
var Flags Config

// Init parses MIZAR_DEBUG into Flags. It is idempotent and safe to call
// from multiple goroutines; only the first call does any work.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return Parse(&Flags, os.Getenv("MIZAR_DEBUG"))
})

// Parse initializes the fields of flags from their struct tag defaults and
// then from a comma-separated "name" or "name=value" list in env. Names
// are matched case-insensitively against field names. Unlike the teacher's
// envflag (which only supports bool fields), int fields are also accepted
// so that LogEval can be set to a level higher than 1.
func Parse[T any](flags *T, env string) error {
	indexByName := make(map[string]int)
	fv := reflect.ValueOf(flags).Elem()
	ft := fv.Type()
	for i := 0; i < ft.NumField(); i++ {
		field := ft.Field(i)
		if tagStr, ok := field.Tag.Lookup("envflag"); ok {
			defaultStr, ok := strings.CutPrefix(tagStr, "default:")
			if !ok {
				return fmt.Errorf("expected tag like `envflag:\"default:true\"`: %s", tagStr)
			}
			if err := setField(fv.Field(i), defaultStr); err != nil {
				return fmt.Errorf("invalid default for %s: %v", field.Name, err)
			}
		}
		indexByName[strings.ToLower(field.Name)] = i
	}

	if env == "" {
		return nil
	}
	var errs []error
	for _, elem := range strings.Split(env, ",") {
		name, valueStr, hasValue := strings.Cut(elem, "=")
		index, ok := indexByName[strings.ToLower(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown %s", elem))
			continue
		}
		if !hasValue {
			valueStr = "true"
		}
		if err := setField(fv.Field(index), valueStr); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s: %v", name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

func setField(f reflect.Value, valueStr string) error {
	switch f.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(valueStr)
		if err != nil {
			return err
		}
		f.SetBool(v)
	case reflect.Int:
		v, err := strconv.Atoi(valueStr)
		if err != nil {
			return err
		}
		f.SetInt(int64(v))
	default:
		return fmt.Errorf("unsupported field kind %s", f.Kind())
	}
	return nil
}
