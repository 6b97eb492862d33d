//go:build temporal_nodata

package temporal

import (
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

func TestWithoutBundledData(t *testing.T) {
	if _, err := TimeZoneFromIdentifier("America/New_York"); errors.KindOf(err) != errors.KindInvalidIdentifier {
		t.Errorf("named zone: %v", err)
	}
	if _, err := CalendarFromIdentifier("coptic"); errors.KindOf(err) != errors.KindInvalidIdentifier {
		t.Errorf("coptic: %v", err)
	}
	if _, err := NewPlainDate(2024, 1, 1, Buddhist); errors.KindOf(err) != errors.KindInvalidIdentifier {
		t.Errorf("buddhist tag: %v", err)
	}
	if tz, err := TimeZoneFromIdentifier("+01:00"); err != nil || tz.Identifier() != "+01:00" {
		t.Errorf("fixed offset: %v", err)
	}
	if _, err := TimeZoneFromIdentifier("UTC"); err != nil {
		t.Errorf("UTC: %v", err)
	}
}
