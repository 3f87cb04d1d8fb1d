package coder

import (
	stderrors "errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/dictcoder/codingpath"
	"github.com/wippyai/dictcoder/errors"
)

func decodeErr(t *testing.T, err error) *errors.Error {
	t.Helper()
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	return e
}

func TestDecode_TruncatingIntegers(t *testing.T) {
	dec := NewDecoderWithDefaults()

	var u8 single[uint8]
	if err := dec.Decode(&u8, map[string]any{"_0": 300}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if u8.V != 44 {
		t.Errorf("uint8 from 300 = %d, want 44", u8.V)
	}

	var i8 single[int8]
	if err := dec.Decode(&i8, map[string]any{"_0": 200}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if i8.V != -56 {
		t.Errorf("int8 from 200 = %d, want -56", i8.V)
	}

	var u16 single[uint16]
	if err := dec.Decode(&u16, map[string]any{"_0": int64(70000)}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if u16.V != 4464 {
		t.Errorf("uint16 from 70000 = %d, want 4464", u16.V)
	}
}

func TestDecode_StrictScalars(t *testing.T) {
	tests := []struct {
		target any
		raw    any
		name   string
	}{
		{&single[float64]{}, float32(1.5), "float64 from float32"},
		{&single[float64]{}, 1, "float64 from int"},
		{&single[float32]{}, 1.5, "float32 from float64"},
		{&single[int]{}, 1.0, "int from float64"},
		{&single[int]{}, "1", "int from string"},
		{&single[string]{}, 1, "string from int"},
		{&single[bool]{}, 1, "bool from int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDecoderWithDefaults().Decode(tt.target, map[string]any{"_0": tt.raw})
			e := decodeErr(t, err)
			if e.Kind != errors.KindTypeMismatch {
				t.Errorf("kind = %v, want type_mismatch", e.Kind)
			}
			if diff := cmp.Diff([]string{"_0"}, e.Path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_PathAccuracy(t *testing.T) {
	dec := NewDecoderWithDefaults()

	t.Run("missing nested key", func(t *testing.T) {
		var o Outer
		err := dec.Decode(&o, map[string]any{"address": map[string]any{"street": "x"}})
		e := decodeErr(t, err)
		if e.Kind != errors.KindValueNotFound {
			t.Errorf("kind = %v, want value_not_found", e.Kind)
		}
		if diff := cmp.Diff([]string{"address", "bar"}, e.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("wrong nested type", func(t *testing.T) {
		var o Outer
		err := dec.Decode(&o, map[string]any{"address": map[string]any{"street": "x", "bar": 1}})
		e := decodeErr(t, err)
		if e.Kind != errors.KindTypeMismatch {
			t.Errorf("kind = %v, want type_mismatch", e.Kind)
		}
		if diff := cmp.Diff([]string{"address", "bar"}, e.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("list index", func(t *testing.T) {
		var s single[[]Address]
		err := dec.Decode(&s, map[string]any{"_0": []any{
			map[string]any{"street": "a", "bar": "b"},
			map[string]any{"street": "c"},
		}})
		e := decodeErr(t, err)
		if diff := cmp.Diff([]string{"_0", "Index 1", "bar"}, e.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDecode_NullVersusAbsent(t *testing.T) {
	dec := NewDecoderWithDefaults()

	tests := []struct {
		from    map[string]any
		want    *string
		name    string
		wantErr bool
	}{
		{map[string]any{}, nil, "absent", false},
		{map[string]any{"_0": nil}, nil, "null", false},
		{map[string]any{"_0": "x"}, ptr("x"), "present", false},
		{map[string]any{"_0": 1}, nil, "wrong type", true},
	}
	for _, tt := range tests {
		t.Run("optional "+tt.name, func(t *testing.T) {
			var s single[*string]
			err := dec.Decode(&s, tt.from)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, s.V); !tt.wantErr && diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, from := range []map[string]any{{}, {"_0": nil}} {
		var s single[string]
		e := decodeErr(t, dec.Decode(&s, from))
		if e.Kind != errors.KindValueNotFound {
			t.Errorf("required string from %v: kind = %v, want value_not_found", from, e.Kind)
		}
	}
}

func TestDecode_TypeMismatchDetails(t *testing.T) {
	var s single[int16]
	e := decodeErr(t, NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": "x"}))
	want := &errors.Error{
		Phase:  errors.PhaseDecode,
		Kind:   errors.KindTypeMismatch,
		Path:   []string{"_0"},
		GoType: "int16",
		Found:  "string",
		Detail: "expected to decode int16 but found string instead",
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ContainerShapeErrors(t *testing.T) {
	dec := NewDecoderWithDefaults()

	var o Outer
	e := decodeErr(t, dec.Decode(&o, map[string]any{"address": []any{"x"}}))
	if e.Kind != errors.KindTypeMismatch {
		t.Errorf("keyed on list: kind = %v, want type_mismatch", e.Kind)
	}

	e = decodeErr(t, dec.Decode(&o, map[string]any{"address": nil}))
	if e.Kind != errors.KindValueNotFound {
		t.Errorf("keyed on null: kind = %v, want value_not_found", e.Kind)
	}

	e = decodeErr(t, dec.Decode(&o, map[string]any{}))
	if e.Kind != errors.KindValueNotFound {
		t.Errorf("keyed on absent: kind = %v, want value_not_found", e.Kind)
	}
	if diff := cmp.Diff([]string{"address"}, e.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}

	var l single[[]int]
	e = decodeErr(t, dec.Decode(&l, map[string]any{"_0": map[string]any{}}))
	if e.Kind != errors.KindTypeMismatch {
		t.Errorf("list from map: kind = %v, want type_mismatch", e.Kind)
	}
}

func TestDecode_UnkeyedPeekBeforeConsume(t *testing.T) {
	ran := false
	check := decodeFunc(func(d *Decoder) error {
		c, err := d.UnkeyedContainer()
		if err != nil {
			return err
		}
		if c.Count() != 4 {
			t.Errorf("Count() = %d, want 4", c.Count())
		}
		if _, err := c.DecodeString(); err == nil {
			t.Error("DecodeString on an int should fail")
		}
		if c.CurrentIndex() != 0 {
			t.Errorf("failed read advanced to %d", c.CurrentIndex())
		}
		n, err := c.DecodeInt()
		if err != nil || n != 1 {
			t.Errorf("DecodeInt = %d, %v", n, err)
		}
		if c.DecodeNil() {
			t.Error("DecodeNil on a string should be false")
		}
		s, err := c.DecodeString()
		if err != nil || s != "a" {
			t.Errorf("DecodeString = %q, %v", s, err)
		}
		if !c.DecodeNil() {
			t.Error("DecodeNil on nil should be true")
		}
		f, err := c.DecodeFloat64()
		if err != nil || f != 2.5 {
			t.Errorf("DecodeFloat64 = %v, %v", f, err)
		}
		if !c.IsAtEnd() {
			t.Error("container should be at end")
		}
		_, err = c.DecodeInt()
		e := decodeErr(t, err)
		if e.Kind != errors.KindValueNotFound {
			t.Errorf("read past end: kind = %v", e.Kind)
		}
		if diff := cmp.Diff([]string{"_0", "Index 4"}, e.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
		ran = true
		return nil
	})

	s := single[decodeFunc]{V: check}
	if err := NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": []any{1, "a", nil, 2.5}}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !ran {
		t.Error("decode function did not run")
	}
}

func TestDecode_UnkeyedOverPrimitiveList(t *testing.T) {
	var got []uint8
	check := decodeFunc(func(d *Decoder) error {
		c, err := d.UnkeyedContainer()
		if err != nil {
			return err
		}
		for !c.IsAtEnd() {
			v, err := c.DecodeUint8()
			if err != nil {
				return err
			}
			got = append(got, v)
		}
		return nil
	})
	s := single[decodeFunc]{V: check}
	if err := NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": []int{1, 300}}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff([]uint8{1, 44}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_NestedContainers(t *testing.T) {
	from := map[string]any{
		"meta": map[string]any{"v": 1},
		"rows": []any{map[string]any{"x": "a"}, []any{true, nil}},
	}
	check := decodeFunc(func(d *Decoder) error {
		c, err := d.Container()
		if err != nil {
			return err
		}
		if diff := cmp.Diff([]string{"meta", "rows"}, c.AllKeys()); diff != "" {
			t.Errorf("AllKeys mismatch (-want +got):\n%s", diff)
		}
		if !c.Contains("meta") || c.Contains("nope") {
			t.Error("Contains is wrong")
		}
		if !c.DecodeNil("nope") {
			t.Error("absent key should decode as nil")
		}
		meta, err := c.NestedContainer("meta")
		if err != nil {
			return err
		}
		if v, err := meta.DecodeInt("v"); err != nil || v != 1 {
			t.Errorf("meta.v = %d, %v", v, err)
		}
		if _, err := c.NestedUnkeyedContainer("meta"); err == nil {
			t.Error("unkeyed container over a map should fail")
		}
		rows, err := c.NestedUnkeyedContainer("rows")
		if err != nil {
			return err
		}
		if _, err := rows.NestedUnkeyedContainer(); err == nil {
			t.Error("unkeyed container over a map element should fail")
		}
		if rows.CurrentIndex() != 0 {
			t.Error("failed nested request must not advance")
		}
		row, err := rows.NestedContainer()
		if err != nil {
			return err
		}
		if x, err := row.DecodeString("x"); err != nil || x != "a" {
			t.Errorf("row.x = %q, %v", x, err)
		}
		cells, err := rows.NestedUnkeyedContainer()
		if err != nil {
			return err
		}
		if diff := cmp.Diff([]string{"rows", "Index 1"}, pathStrings(cells.CodingPath())); diff != "" {
			t.Errorf("cells path mismatch (-want +got):\n%s", diff)
		}
		if b, err := cells.DecodeBool(); err != nil || !b {
			t.Errorf("cells[0] = %v, %v", b, err)
		}
		if !cells.DecodeNil() {
			t.Error("cells[1] should be nil")
		}
		if _, err := c.NestedContainer("missing"); err == nil {
			t.Error("nested container for a missing key should fail")
		}
		return nil
	})
	if err := NewDecoderWithDefaults().DecodeValue(&check, from); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
}

func TestDecode_SpecialValues(t *testing.T) {
	when := time.Date(2001, 1, 1, 0, 0, 0, 500_000_000, time.UTC)

	t.Run("date strategies", func(t *testing.T) {
		tests := []struct {
			raw      any
			strategy DateStrategy
		}{
			{978307200.5, DateSecondsSinceEpoch},
			{978307200500.0, DateMillisecondsSinceEpoch},
			{"2001-01-01T00:00:00.5Z", DateRFC3339},
			{"2001-01-01T00:00:00.5Z", DateSecondsSinceEpoch},
			{when, DateMillisecondsSinceEpoch},
		}
		for _, tt := range tests {
			var s single[time.Time]
			err := NewDecoder(Options{DateStrategy: tt.strategy}).Decode(&s, map[string]any{"_0": tt.raw})
			if err != nil {
				t.Fatalf("%v from %v: %v", tt.strategy, tt.raw, err)
			}
			if !s.V.Equal(when) {
				t.Errorf("%v from %v = %v, want %v", tt.strategy, tt.raw, s.V, when)
			}
		}
	})

	t.Run("bad date string", func(t *testing.T) {
		var s single[time.Time]
		e := decodeErr(t, NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": "yesterday"}))
		if e.Kind != errors.KindDataCorrupted {
			t.Errorf("kind = %v, want data_corrupted", e.Kind)
		}
	})

	t.Run("blob forms", func(t *testing.T) {
		for _, raw := range []any{[]any{104, 105}, []byte("hi"), "hi", []int{104, 105}} {
			var s single[[]byte]
			if err := NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": raw}); err != nil {
				t.Fatalf("blob from %T: %v", raw, err)
			}
			if string(s.V) != "hi" {
				t.Errorf("blob from %T = %q", raw, s.V)
			}
		}
	})

	t.Run("blob element type", func(t *testing.T) {
		var s single[[]byte]
		e := decodeErr(t, NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": []any{1, "x"}}))
		if diff := cmp.Diff([]string{"_0", "Index 1"}, e.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("url", func(t *testing.T) {
		var s single[*url.URL]
		if err := NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": "https://example.com/x?y=1"}); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if s.V.Host != "example.com" || s.V.RawQuery != "y=1" {
			t.Errorf("url = %v", s.V)
		}
	})

	t.Run("malformed url", func(t *testing.T) {
		var s single[url.URL]
		e := decodeErr(t, NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": "://bad"}))
		if e.Kind != errors.KindDataCorrupted {
			t.Errorf("kind = %v, want data_corrupted", e.Kind)
		}
	})
}

func TestDecode_MapKeys(t *testing.T) {
	dec := NewDecoderWithDefaults()

	var ints single[map[int8]string]
	if err := dec.Decode(&ints, map[string]any{"_0": map[string]any{"1": "a", "-3": "b"}}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(map[int8]string{1: "a", -3: "b"}, ints.V); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	e := decodeErr(t, dec.Decode(&ints, map[string]any{"_0": map[string]any{"x": "a"}}))
	if e.Kind != errors.KindDataCorrupted {
		t.Errorf("bad int key: kind = %v, want data_corrupted", e.Kind)
	}

	var texts single[map[version]int]
	if err := dec.Decode(&texts, map[string]any{"_0": map[string]any{"2.1": 7}}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if texts.V[version{2, 1}] != 7 {
		t.Errorf("text keys = %v", texts.V)
	}

	var entries single[map[Key]string]
	e = decodeErr(t, dec.Decode(&entries, map[string]any{"_0": []any{map[string]any{"id": 1}}}))
	if e.Kind != errors.KindDataCorrupted {
		t.Errorf("odd entry list: kind = %v, want data_corrupted", e.Kind)
	}
}

func TestDecode_Arrays(t *testing.T) {
	var a single[[3]int]
	if err := NewDecoderWithDefaults().Decode(&a, map[string]any{"_0": []int{1, 2, 3}}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if a.V != [3]int{1, 2, 3} {
		t.Errorf("array = %v", a.V)
	}

	e := decodeErr(t, NewDecoderWithDefaults().Decode(&a, map[string]any{"_0": []any{1}}))
	if e.Kind != errors.KindValueNotFound {
		t.Errorf("short array: kind = %v, want value_not_found", e.Kind)
	}

	var pair single[[2]int]
	e = decodeErr(t, NewDecoderWithDefaults().Decode(&pair, map[string]any{"_0": []any{1, 2, 3}}))
	if e.Kind != errors.KindDataCorrupted {
		t.Errorf("long array: kind = %v, want data_corrupted", e.Kind)
	}
	if e.Detail != "expected 2 elements for [2]int but found 3" {
		t.Errorf("long array: detail = %q", e.Detail)
	}
	if diff := cmp.Diff([]string{"_0"}, e.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_AnyPassthrough(t *testing.T) {
	raw := map[string]any{"_0": []any{1, "a", nil}}
	var s single[any]
	if err := NewDecoderWithDefaults().Decode(&s, raw); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(raw["_0"], s.V); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_PointerReceiverScalar(t *testing.T) {
	var s single[counter]
	if err := NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": 9}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s.V.n != 9 {
		t.Errorf("counter = %d, want 9", s.V.n)
	}
}

func TestDecode_InvalidTarget(t *testing.T) {
	dec := NewDecoderWithDefaults()
	for _, target := range []any{nil, Outer{}, (*Outer)(nil)} {
		e := decodeErr(t, dec.Decode(target, map[string]any{}))
		if e.Kind != errors.KindInvalidValue {
			t.Errorf("target %T: kind = %v, want invalid_value", target, e.Kind)
		}
	}
}

func TestDecode_UnsupportedTarget(t *testing.T) {
	var s single[chan int]
	e := decodeErr(t, NewDecoderWithDefaults().Decode(&s, map[string]any{"_0": 1}))
	if e.Kind != errors.KindUnsupported {
		t.Errorf("kind = %v, want unsupported", e.Kind)
	}
}

func TestDecode_UserInfo(t *testing.T) {
	var seen any
	check := decodeFunc(func(d *Decoder) error {
		seen = d.UserInfo()["tenant"]
		return nil
	})
	dec := NewDecoder(Options{UserInfo: map[string]any{"tenant": "acme"}})
	if err := dec.DecodeValue(&check, map[string]any{}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if seen != "acme" {
		t.Errorf("tenant = %v, want acme", seen)
	}
}

func TestDecode_ContractViolations(t *testing.T) {
	tests := []struct {
		fn   func(d *Decoder) error
		name string
	}{
		{func(d *Decoder) error {
			c, _ := d.Container()
			c.SuperDecoder()
			return nil
		}, "keyed super decoder"},
		{func(d *Decoder) error {
			c, _ := d.Container()
			c.SuperDecoderForKey("base")
			return nil
		}, "keyed super decoder for key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := decodeFunc(tt.fn)
			expectViolation(t, func() {
				_ = NewDecoderWithDefaults().DecodeValue(&check, map[string]any{})
			})
		})
	}

	t.Run("unkeyed super decoder", func(t *testing.T) {
		check := decodeFunc(func(d *Decoder) error {
			c, err := d.UnkeyedContainer()
			if err != nil {
				return err
			}
			c.SuperDecoder()
			return nil
		})
		expectViolation(t, func() {
			_ = NewDecoderWithDefaults().DecodeValue(&check, []any{})
		})
	})
}

func TestDecode_DecoderUsedAfterDecode(t *testing.T) {
	var kept *Decoder
	check := decodeFunc(func(d *Decoder) error {
		kept = d
		_, err := d.Container()
		return err
	})
	if err := NewDecoderWithDefaults().DecodeValue(&check, map[string]any{"n": 1}); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expectViolation(t, func() { _, _ = kept.Container() })
	expectViolation(t, func() { _, _ = kept.UnkeyedContainer() })
	expectViolation(t, func() { _, _ = kept.SingleValueContainer().DecodeInt() })
	expectViolation(t, func() { _, _ = NewDecoderWithDefaults().Container() })
}

func pathStrings(segs []codingpath.Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.String()
	}
	return out
}
