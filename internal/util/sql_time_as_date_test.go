package util // nolint:testpackage

import (
	"testing"
	"time"
)

func TestTimeAsDateRoundTrip(t *testing.T) {
	// Late evening on the US east coast is already the next day in UTC.
	newYork := time.FixedZone("-05:00", -5*3600)
	in := NewTimeAsDate(time.Date(2024, 3, 1, 23, 30, 0, 0, newYork))

	value, err := in.Value()
	if err != nil {
		t.Fatal(err)
	}
	if value != "2024-03-02" {
		t.Errorf("expected 2024-03-02, got %v", value)
	}

	var out TimeAsDate
	if err := out.Scan(value); err != nil {
		t.Fatal(err)
	}
	if !out.Time().Equal(in.Time()) {
		t.Errorf("round trip drifted: %s != %s", out, in)
	}
}

func TestTimeAsDateScan(t *testing.T) {
	expected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for k, src := range []interface{}{
		"2024-03-01",
		[]byte("2024-03-01"),
		time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
	} {
		var actual TimeAsDate
		if err := actual.Scan(src); err != nil {
			t.Fatal(err)
		}
		if !actual.Time().Equal(expected) {
			t.Errorf("case #%d: expected %s, got %s", k, expected, actual)
		}
	}

	var bad TimeAsDate
	if err := bad.Scan(42); err == nil {
		t.Error("expected an error when scanning an int")
	}
}
