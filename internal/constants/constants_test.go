package constants

import (
	"testing"
	"time"
)

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "hanadb-exporter/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestHANATimestampFormat(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.UTC)
	if got := ts.Format(HANATimestampFormat); got != "2024-03-05 07:08:09.123456" {
		t.Errorf("Format() = %q", got)
	}
}
