package raw

import "testing"

func TestConf(t *testing.T) {
	c := New().Prefix("RAWTEST_").Prefix("LOG_")
	t.Setenv("RAWTEST_LOG_LEVEL", "  info ")
	t.Setenv("RAWTEST_LOG_CALLER", "Yes")
	t.Setenv("RAWTEST_LOG_COLOR", "0")
	t.Setenv("RAWTEST_LOG_BAD", "sometimes")
	t.Setenv("RAWTEST_LOG_SAMPLE", "10")
	t.Setenv("RAWTEST_LOG_NEG", "-3")

	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Errorf("Get = %q", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Errorf("Get default = %q", got)
	}

	bools := []struct {
		key       string
		def, want bool
	}{
		{"CALLER", false, true},
		{"COLOR", true, false},
		{"BAD", true, true},
		{"UNSET", false, false},
	}
	for _, b := range bools {
		if got := c.GetBool(b.key, b.def); got != b.want {
			t.Errorf("GetBool(%s) = %v", b.key, got)
		}
	}

	if c.GetInt("SAMPLE", 0) != 10 || c.GetInt("NEG", 1) != 1 || c.GetInt("BAD", 2) != 2 || c.GetInt("UNSET", 3) != 3 {
		t.Error("GetInt mismatch")
	}
}
