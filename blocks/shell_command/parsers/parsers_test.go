package parsers

import (
	"reflect"
	"testing"
)

func TestSingleLine(t *testing.T) {
	got, err := (&SingleLineParser{}).Parse("\n  up 3 hours  \nsecond\n")
	if err != nil || got != "up 3 hours" {
		t.Errorf("Parse = %v, %v", got, err)
	}
	if _, err := (&SingleLineParser{}).Parse(" \n"); err == nil {
		t.Error("empty output accepted")
	}
}

func TestMultiLine(t *testing.T) {
	got, _ := (&MultiLineParser{}).Parse(" a \n\nb\n")
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestKeyValue(t *testing.T) {
	got, err := (&KeyValueParser{}).Parse("host=box\nkernel: 6.1\nnoise\n=x\n")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"host": "box", "kernel": "6.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
	if _, err := (&KeyValueParser{}).Parse("nothing here"); err == nil {
		t.Error("input without pairs accepted")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"single_line", "multi_line", "key_value"} {
		if _, ok := Registry()[name]; !ok {
			t.Errorf("parser %q not registered", name)
		}
	}
}
