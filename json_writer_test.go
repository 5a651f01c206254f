package finasist

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("field order is insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("symbol", "THYAO.IS")
		w.Append("quantity", 100)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"symbol":"THYAO.IS","quantity":100}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.Embed(json.RawMessage(`{"c":3,"d":4}`))
		w.Append("b", 2)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":1,"c":3,"d":4,"b":2}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is still added by Append
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestMoneyMarshalJSON(t *testing.T) {
	got, err := json.Marshal(TRY(1234.567))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// currency first, amount rounded to the currency fraction
	want := `{"currency":"TRY","amount":1234.57}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	// the weak currency is omitted entirely
	got, err = json.Marshal(M(5, ""))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"amount":5}`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
