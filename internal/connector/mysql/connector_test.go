package mysql

import "testing"

func TestSupportsFractionalSeconds(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"5.6.4", true},
		{"5.6.3", false},
		{"5.6.51", true},
		{"5.5.62", false},
		{"5.7.44", true},
		{"8.0.36", true},
		{"8.4.0", true},
		{"4.1.22", false},
		{"10.11.6-MariaDB", true},
		{"5.5.5-10.6.16-MariaDB", false},
		{"garbage", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := supportsFractionalSeconds(tt.version); got != tt.want {
			t.Errorf("supportsFractionalSeconds(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestDialectReflectsProbe(t *testing.T) {
	c := &MySQLConnector{fractionalSeconds: true}
	d := c.Dialect()
	if d.Driver != "mysql" {
		t.Errorf("driver = %q", d.Driver)
	}
	if !d.SupportsFractionalSeconds {
		t.Error("fractional seconds probe not reflected in dialect")
	}
	if d.SupportsPartialIndexes || d.SupportsCitext {
		t.Error("mysql must not advertise partial indexes or citext")
	}
}
