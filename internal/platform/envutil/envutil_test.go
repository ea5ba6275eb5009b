package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestEnvParsing(t *testing.T) {
	t.Setenv("ENVUTIL_INT", "42")
	t.Setenv("ENVUTIL_BAD_INT", "forty-two")
	t.Setenv("ENVUTIL_BOOL", "off")
	t.Setenv("ENVUTIL_DUR", "45s")
	t.Setenv("ENVUTIL_DUR_SECS", "7")
	t.Setenv("ENVUTIL_LIST", " a, ,b ,c")

	if got := Int("ENVUTIL_INT", 1); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 1); got != 1 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := Bool("ENVUTIL_BOOL", true); got {
		t.Fatalf("Bool: expected false")
	}
	if got := Bool("ENVUTIL_MISSING", true); !got {
		t.Fatalf("Bool default: expected true")
	}
	if got := Duration("ENVUTIL_DUR", time.Second); got != 45*time.Second {
		t.Fatalf("Duration: got %v", got)
	}
	if got := Duration("ENVUTIL_DUR_SECS", time.Second); got != 7*time.Second {
		t.Fatalf("Duration seconds: got %v", got)
	}
	if got := String("ENVUTIL_MISSING", "def"); got != "def" {
		t.Fatalf("String default: got %q", got)
	}
	if got := List("ENVUTIL_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("List: got %v", got)
	}
}
