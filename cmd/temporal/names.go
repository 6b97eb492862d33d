package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/errors"
)

var units = map[string]capi.Unit{
	"auto":        capi.UnitAuto,
	"year":        capi.UnitYear,
	"month":       capi.UnitMonth,
	"week":        capi.UnitWeek,
	"day":         capi.UnitDay,
	"hour":        capi.UnitHour,
	"minute":      capi.UnitMinute,
	"second":      capi.UnitSecond,
	"millisecond": capi.UnitMillisecond,
	"microsecond": capi.UnitMicrosecond,
	"nanosecond":  capi.UnitNanosecond,
}

var roundingModes = map[string]capi.RoundingMode{
	"default":    capi.RoundDefault,
	"ceil":       capi.RoundCeil,
	"floor":      capi.RoundFloor,
	"expand":     capi.RoundExpand,
	"trunc":      capi.RoundTrunc,
	"halfCeil":   capi.RoundHalfCeil,
	"halfFloor":  capi.RoundHalfFloor,
	"halfExpand": capi.RoundHalfExpand,
	"halfTrunc":  capi.RoundHalfTrunc,
	"halfEven":   capi.RoundHalfEven,
}

var disambiguations = map[string]capi.Disambiguation{
	"reject":     capi.DisambiguateReject,
	"compatible": capi.DisambiguateCompatible,
	"earlier":    capi.DisambiguateEarlier,
	"later":      capi.DisambiguateLater,
}

var offsetOptions = map[string]capi.OffsetOption{
	"reject": capi.OffsetReject,
	"use":    capi.OffsetUse,
	"prefer": capi.OffsetPrefer,
	"ignore": capi.OffsetIgnore,
}

var overflows = map[string]capi.Overflow{
	"constrain": capi.OverflowConstrain,
	"reject":    capi.OverflowReject,
}

// lookup resolves a flag value against a name table, singular or plural.
func lookup[T any](what string, table map[string]T, name string) (T, error) {
	if v, ok := table[name]; ok {
		return v, nil
	}
	if v, ok := table[strings.TrimSuffix(name, "s")]; ok {
		return v, nil
	}
	var zero T
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, k)
	}
	sort.Strings(names)
	return zero, errors.InvalidArgument(errors.PhaseConstruct, []string{what},
		fmt.Sprintf("unknown %s %q (one of %s)", what, name, strings.Join(names, ", ")))
}

// toStringOptions maps the precision setting: auto, minute or 0-9 digits.
func toStringOptions(precision string) (capi.FlatToStringOptions, error) {
	switch precision {
	case "", "auto":
		return capi.FlatToStringOptions{}, nil
	case "minute":
		return capi.FlatToStringOptions{Precision: capi.PrecisionMinute}, nil
	}
	n, err := strconv.ParseUint(precision, 10, 8)
	if err != nil || n > 9 {
		return capi.FlatToStringOptions{}, errors.InvalidArgument(errors.PhaseFormat, []string{"precision"},
			fmt.Sprintf("%q: want auto, minute or 0-9", precision))
	}
	return capi.FlatToStringOptions{Precision: capi.PrecisionDigits, Digits: uint8(n)}, nil
}
