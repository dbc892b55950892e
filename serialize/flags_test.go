package serialize

import (
	"errors"
	"testing"
)

func TestFlagReader_FixedArity(t *testing.T) {
	fr := NewFlagReader()
	var got []string
	fr.AddFlag("blocks", 'B', 1, func(args []string, _ any) error {
		got = args
		return nil
	})
	if err := fr.ReadString("-B 10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "10" {
		t.Fatalf("expected [10], got %v", got)
	}
}

func TestFlagReader_LongName(t *testing.T) {
	fr := NewFlagReader()
	var got []string
	fr.AddFlag("blocks", 'B', 1, func(args []string, _ any) error {
		got = args
		return nil
	})
	if err := fr.ReadString("--blocks 7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "7" {
		t.Fatalf("expected [7], got %v", got)
	}
}

func TestFlagReader_ConcatenatedShortFlags(t *testing.T) {
	fr := NewFlagReader()
	var a, b bool
	fr.AddFlag("alpha", 'a', 0, func(_ []string, _ any) error { a = true; return nil })
	fr.AddFlag("beta", 'b', 0, func(_ []string, _ any) error { b = true; return nil })
	if err := fr.ReadString("-ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a || !b {
		t.Fatalf("expected both flags fired, got a=%v b=%v", a, b)
	}
}

func TestFlagReader_DynamicArity(t *testing.T) {
	fr := NewFlagReader()
	var got []string
	fr.AddFlag("genome", 'g', -1, func(args []string, _ any) error {
		got = args
		return nil
	})
	if err := fr.ReadString("-g 3 1 2 3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != "1" || got[1] != "2" || got[2] != "3" {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func TestFlagReader_UnknownShortFlag(t *testing.T) {
	fr := NewFlagReader()
	err := fr.ReadString("-z")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFlagReader_NotEnoughArguments(t *testing.T) {
	fr := NewFlagReader()
	fr.AddFlag("blocks", 'B', 2, func(_ []string, _ any) error { return nil })
	err := fr.ReadString("-B 1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFlagReader_ZeroArityFlagAtEnd(t *testing.T) {
	fr := NewFlagReader()
	fired := false
	fr.AddFlag("verbose", 'v', 0, func(args []string, _ any) error {
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
		fired = true
		return nil
	})
	if err := fr.ReadString("-v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fired {
		t.Fatal("expected zero-arity flag to fire")
	}
}

func TestSplitOpts(t *testing.T) {
	got := SplitOpts("0.5,0.4,0.3")
	want := []string{"0.5", "0.4", "0.3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestParseInt64_Invalid(t *testing.T) {
	_, err := ParseInt64("not-a-number")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
