package safe

import (
	"math"
	"testing"
)

type intTestCase[T Integer] struct {
	name    string
	v       T
	want    int
	wantErr bool
}

func runIntCase[T Integer](t *testing.T, tc intTestCase[T]) {
	t.Helper()

	t.Run(tc.name, func(t *testing.T) {
		got, err := Int(tc.v)
		if (err != nil) != tc.wantErr {
			t.Errorf("Int() error = %v, wantErr %v", err, tc.wantErr)
			return
		}
		if got != tc.want {
			t.Errorf("Int() got = %v, want %v", got, tc.want)
		}
	})
}

func TestInt(t *testing.T) {
	runIntCase(t, intTestCase[int]{name: "int passthrough", v: -7, want: -7})
	runIntCase(t, intTestCase[int32]{name: "int32 negative", v: -5, want: -5})
	runIntCase(t, intTestCase[uint32]{name: "uint32 max", v: math.MaxUint32, want: math.MaxUint32})
	runIntCase(t, intTestCase[uint64]{name: "uint64 small", v: 253, want: 253})
	runIntCase(t, intTestCase[uint64]{name: "uint64 boundary ok", v: math.MaxInt, want: math.MaxInt})
	runIntCase(t, intTestCase[uint64]{name: "uint64 overflow", v: math.MaxUint64, wantErr: true})
	runIntCase(t, intTestCase[uint]{name: "uint overflow", v: math.MaxUint, wantErr: true})
	runIntCase(t, intTestCase[int64]{name: "int64 max", v: math.MaxInt64, want: math.MaxInt64})
}

func TestLen(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want uint64
	}{
		{name: "zero", n: 0, want: 0},
		{name: "positive", n: 65536, want: 65536},
		{name: "negative clamps", n: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Len(tt.n); got != tt.want {
				t.Errorf("Len() = %v, want %v", got, tt.want)
			}
		})
	}
}
