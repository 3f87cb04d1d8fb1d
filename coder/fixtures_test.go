package coder

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-cmp/cmp"
)

// test models

// single stores one value under "_0".
type single[T any] struct {
	V T
}

func (s single[T]) EncodeTo(e *Encoder) error {
	return e.Container().Encode("_0", s.V)
}

func (s *single[T]) DecodeFrom(d *Decoder) error {
	c, err := d.Container()
	if err != nil {
		return err
	}
	return c.Decode("_0", &s.V)
}

type Address struct {
	Street string
	Bar    string
}

func (a Address) EncodeTo(e *Encoder) error {
	c := e.Container()
	c.EncodeString("street", a.Street)
	c.EncodeString("bar", a.Bar)
	return nil
}

func (a *Address) DecodeFrom(d *Decoder) error {
	c, err := d.Container()
	if err != nil {
		return err
	}
	if a.Street, err = c.DecodeString("street"); err != nil {
		return err
	}
	a.Bar, err = c.DecodeString("bar")
	return err
}

type Outer struct {
	Address Address
}

func (o Outer) EncodeTo(e *Encoder) error {
	return e.Container().Encode("address", o.Address)
}

func (o *Outer) DecodeFrom(d *Decoder) error {
	c, err := d.Container()
	if err != nil {
		return err
	}
	return c.Decode("address", &o.Address)
}

// Shape is a sum type written with a "kind" discriminator.
type Shape interface {
	isShape()
}

type Circle struct{ Radius float64 }
type Rect struct{ W, H float64 }

func (Circle) isShape() {}
func (Rect) isShape()   {}

type ShapeBox struct {
	Shape Shape
}

func (b ShapeBox) EncodeTo(e *Encoder) error {
	c := e.Container()
	switch s := b.Shape.(type) {
	case Circle:
		c.EncodeString("kind", "circle")
		c.EncodeFloat64("radius", s.Radius)
	case Rect:
		c.EncodeString("kind", "rect")
		c.EncodeFloat64("w", s.W)
		c.EncodeFloat64("h", s.H)
	default:
		return fmt.Errorf("unknown shape %T", b.Shape)
	}
	return nil
}

func (b *ShapeBox) DecodeFrom(d *Decoder) error {
	c, err := d.Container()
	if err != nil {
		return err
	}
	kind, err := c.DecodeString("kind")
	if err != nil {
		return err
	}
	switch kind {
	case "circle":
		r, err := c.DecodeFloat64("radius")
		if err != nil {
			return err
		}
		b.Shape = Circle{Radius: r}
	case "rect":
		w, err := c.DecodeFloat64("w")
		if err != nil {
			return err
		}
		h, err := c.DecodeFloat64("h")
		if err != nil {
			return err
		}
		b.Shape = Rect{W: w, H: h}
	default:
		return fmt.Errorf("unknown shape kind %q", kind)
	}
	return nil
}

// Key is a record used as a map key.
type Key struct {
	ID int
}

func (k Key) EncodeTo(e *Encoder) error {
	e.Container().EncodeInt("id", k.ID)
	return nil
}

func (k *Key) DecodeFrom(d *Decoder) error {
	c, err := d.Container()
	if err != nil {
		return err
	}
	k.ID, err = c.DecodeInt("id")
	return err
}

type UserProfile struct {
	Joined   time.Time
	Homepage *url.URL
	Nickname *string
	Counts   map[string]int
	Name     string
	Tags     []string
	Avatar   []byte
	Shapes   []ShapeBox
	Address  Address
	Score    float64
	Ratio    float32
	Age      uint8
	Active   bool
}

func (u UserProfile) EncodeTo(e *Encoder) error {
	c := e.Container()
	c.EncodeString("name", u.Name)
	c.EncodeUint8("age", u.Age)
	c.EncodeFloat64("score", u.Score)
	c.EncodeFloat32("ratio", u.Ratio)
	c.EncodeBool("active", u.Active)
	if err := c.EncodeIfPresent("nickname", u.Nickname); err != nil {
		return err
	}
	if err := c.Encode("address", u.Address); err != nil {
		return err
	}
	if err := c.Encode("tags", u.Tags); err != nil {
		return err
	}
	if err := c.Encode("avatar", u.Avatar); err != nil {
		return err
	}
	if err := c.EncodeIfPresent("homepage", u.Homepage); err != nil {
		return err
	}
	if err := c.Encode("joined", u.Joined); err != nil {
		return err
	}
	if err := c.Encode("shapes", u.Shapes); err != nil {
		return err
	}
	return c.Encode("counts", u.Counts)
}

func (u *UserProfile) DecodeFrom(d *Decoder) error {
	c, err := d.Container()
	if err != nil {
		return err
	}
	if u.Name, err = c.DecodeString("name"); err != nil {
		return err
	}
	if u.Age, err = c.DecodeUint8("age"); err != nil {
		return err
	}
	if u.Score, err = c.DecodeFloat64("score"); err != nil {
		return err
	}
	if u.Ratio, err = c.DecodeFloat32("ratio"); err != nil {
		return err
	}
	if u.Active, err = c.DecodeBool("active"); err != nil {
		return err
	}
	if _, err = c.DecodeIfPresent("nickname", &u.Nickname); err != nil {
		return err
	}
	if err = c.Decode("address", &u.Address); err != nil {
		return err
	}
	if err = c.Decode("tags", &u.Tags); err != nil {
		return err
	}
	if err = c.Decode("avatar", &u.Avatar); err != nil {
		return err
	}
	if err = c.Decode("homepage", &u.Homepage); err != nil {
		return err
	}
	if err = c.Decode("joined", &u.Joined); err != nil {
		return err
	}
	if err = c.Decode("shapes", &u.Shapes); err != nil {
		return err
	}
	return c.Decode("counts", &u.Counts)
}

// pathRecorder captures the coding path it is encoded and decoded at.
type pathRecorder struct {
	seen *[]string
}

func (p pathRecorder) EncodeTo(e *Encoder) error {
	*p.seen = append(*p.seen, fmt.Sprint(e.CodingPath()))
	e.SingleValueContainer().EncodeBool(true)
	return nil
}

func newProfile() UserProfile {
	nick := "ada"
	home, _ := url.Parse("https://example.com/users/ada?tab=1")
	return UserProfile{
		Name:     "Ada",
		Age:      36,
		Score:    99.5,
		Ratio:    0.25,
		Active:   true,
		Nickname: &nick,
		Address:  Address{Street: "1 Loop", Bar: "north"},
		Tags:     []string{"admin", "ops"},
		Avatar:   []byte{0, 1, 254, 255},
		Homepage: home,
		Joined:   time.Date(2024, 3, 9, 12, 30, 15, 250_000_000, time.UTC),
		Shapes:   []ShapeBox{{Circle{Radius: 2}}, {Rect{W: 3, H: 4}}},
		Counts:   map[string]int{"logins": 12, "posts": 3},
	}
}

func ptr[T any](v T) *T { return &v }

var urlComparer = cmp.Comparer(func(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

// version is a text-keyed map key.
type version struct {
	Major, Minor int
}

func (v version) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d.%d", v.Major, v.Minor)), nil
}

func (v *version) UnmarshalText(b []byte) error {
	_, err := fmt.Sscanf(string(b), "%d.%d", &v.Major, &v.Minor)
	return err
}

// silent encodes nothing at all.
type silent struct{}

func (silent) EncodeTo(*Encoder) error { return nil }

// twice asks for the keyed container two times.
type twice struct{}

func (twice) EncodeTo(e *Encoder) error {
	e.Container().EncodeInt("a", 1)
	e.Container().EncodeInt("b", 2)
	return nil
}

type nested struct{}

func (nested) EncodeTo(e *Encoder) error {
	c := e.Container()
	c.NestedContainer("meta").EncodeInt("v", 1)
	c.NestedContainer("meta").EncodeInt("w", 2)
	rows := c.NestedUnkeyedContainer("rows")
	rows.NestedContainer().EncodeString("x", "a")
	cells := rows.NestedUnkeyedContainer()
	cells.EncodeBool(true)
	cells.EncodeNil()
	return nil
}

type tenantEcho struct{}

func (tenantEcho) EncodeTo(e *Encoder) error {
	tenant, _ := e.UserInfo()["tenant"].(string)
	e.Container().EncodeString("tenant", tenant)
	return nil
}

// counter implements the contract on its pointer only.
type counter struct {
	n int
}

func (c *counter) EncodeTo(e *Encoder) error {
	e.SingleValueContainer().EncodeInt(c.n)
	return nil
}

func (c *counter) DecodeFrom(d *Decoder) error {
	n, err := d.SingleValueContainer().DecodeInt()
	c.n = n
	return err
}

type encodeFunc func(e *Encoder) error

func (f encodeFunc) EncodeTo(e *Encoder) error { return f(e) }

type decodeFunc func(d *Decoder) error

func (f *decodeFunc) DecodeFrom(d *Decoder) error { return (*f)(d) }
