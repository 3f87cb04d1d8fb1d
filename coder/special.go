package coder

import (
	"math"
	"net/url"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/dictcoder/coder/internal/value"
	"github.com/wippyai/dictcoder/errors"
)

// Dates, blobs and URLs are stored in container-native forms rather than as
// Go values. Dates and blobs go through the regular container surface.

func (e *Encoder) boxDate(rv reflect.Value) (*value.Value, error) {
	t := rv.Interface().(time.Time)
	return e.boxGeneric(func(e *Encoder) error {
		c := e.SingleValueContainer()
		switch e.opts.DateStrategy {
		case DateMillisecondsSinceEpoch:
			c.EncodeFloat64(millisSinceEpoch(t))
		case DateRFC3339:
			c.EncodeString(t.Format(time.RFC3339Nano))
		default:
			c.EncodeFloat64(secondsSinceEpoch(t))
		}
		return nil
	})
}

func (e *Encoder) boxBlob(b []byte) (*value.Value, error) {
	return e.boxGeneric(func(e *Encoder) error {
		c := e.UnkeyedContainer()
		for _, x := range b {
			c.EncodeUint8(x)
		}
		return nil
	})
}

func (e *Encoder) boxURL(rv reflect.Value) *value.Value {
	u := rv.Interface().(url.URL)
	return value.String(u.String())
}

func (d *Decoder) unboxDate(raw any, dst reflect.Value) error {
	return d.unboxGeneric(raw, func(d *Decoder) error {
		t, err := d.decodeDate()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	})
}

func (d *Decoder) decodeDate() (time.Time, error) {
	c := d.SingleValueContainer()
	raw := d.top()
	switch v := raw.(type) {
	case nil:
		return time.Time{}, valueNotFound(d.path, "time.Time")
	case time.Time:
		return v, nil
	case string:
		if d.opts.DateStrategy != DateRFC3339 {
			Logger().Debug("decoding date from string",
				zap.String("path", d.path.String()),
				zap.Stringer("strategy", d.opts.DateStrategy))
		}
		return d.parseDate(v)
	}

	switch d.opts.DateStrategy {
	case DateMillisecondsSinceEpoch:
		ms, err := c.DecodeFloat64()
		if err != nil {
			return time.Time{}, err
		}
		return fromMillis(ms), nil
	case DateRFC3339:
		s, err := c.DecodeString()
		if err != nil {
			return time.Time{}, err
		}
		return d.parseDate(s)
	default:
		sec, err := c.DecodeFloat64()
		if err != nil {
			return time.Time{}, err
		}
		return fromSeconds(sec), nil
	}
}

func (d *Decoder) parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.New(errors.PhaseDecode, errors.KindDataCorrupted).
			Path(d.path.Strings()...).
			Value(s).
			Cause(err).
			Detail("date string is not RFC 3339 formatted").
			Build()
	}
	return t, nil
}

func (d *Decoder) unboxBlob(raw any, dst reflect.Value) error {
	var out []byte
	switch v := raw.(type) {
	case nil:
		return valueNotFound(d.path, dst.Type().String())
	case []byte:
		out = append([]byte(nil), v...)
	case string:
		Logger().Debug("decoding blob from string", zap.String("path", d.path.String()))
		out = []byte(v)
	default:
		list, ok := asList(raw)
		if !ok {
			return typeMismatch(d.path, dst.Type().String(), raw)
		}
		out = make([]byte, list.len())
		for i := range out {
			b, err := decodeInteger[uint8](d.path.AppendIndex(i), list.at(i), "uint8")
			if err != nil {
				return err
			}
			out[i] = b
		}
	}
	dst.SetBytes(out)
	return nil
}

func (d *Decoder) unboxURL(raw any, dst reflect.Value) error {
	switch v := raw.(type) {
	case nil:
		return valueNotFound(d.path, "url.URL")
	case *url.URL:
		if v == nil {
			return valueNotFound(d.path, "url.URL")
		}
		dst.Set(reflect.ValueOf(*v))
	case url.URL:
		dst.Set(reflect.ValueOf(v))
	case string:
		u, err := url.Parse(v)
		if err != nil {
			return errors.New(errors.PhaseDecode, errors.KindDataCorrupted).
				Path(d.path.Strings()...).
				Value(v).
				Cause(err).
				Detail("invalid URL string").
				Build()
		}
		dst.Set(reflect.ValueOf(*u))
	default:
		return typeMismatch(d.path, "url.URL", raw)
	}
	return nil
}

func secondsSinceEpoch(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func millisSinceEpoch(t time.Time) float64 {
	return float64(t.UnixMilli()) + float64(t.Nanosecond()%1e6)/1e6
}

func fromSeconds(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

func fromMillis(f float64) time.Time {
	ms, frac := math.Modf(f)
	return time.UnixMilli(int64(ms)).Add(time.Duration(math.Round(frac * 1e6))).UTC()
}
