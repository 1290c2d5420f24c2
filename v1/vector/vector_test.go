package vector

import "testing"

func TestSingle_KindAndValues(t *testing.T) {
	v := Single[float32](0.1, 0.2, 0.3)

	if v.Kind() != KindSingle {
		t.Errorf("expected KindSingle, got %v", v.Kind())
	}
	if got := v.Values(); len(got) != 3 {
		t.Errorf("expected 3 values, got %d", len(got))
	}
	if v.Rows() != nil {
		t.Error("expected nil rows for a single vector")
	}
	if v.Dimension() != 3 {
		t.Errorf("expected dimension 3, got %d", v.Dimension())
	}
}

func TestSingle_FromFloat64(t *testing.T) {
	v := Single(0.5, 1.5)

	values := v.Values()
	if values[0] != 0.5 || values[1] != 1.5 {
		t.Errorf("float64 values not converted, got %v", values)
	}
}

func TestMulti_KindAndRows(t *testing.T) {
	v := Multi([]float32{1, 2}, []float32{3, 4}, []float32{5, 6})

	if v.Kind() != KindMulti {
		t.Errorf("expected KindMulti, got %v", v.Kind())
	}
	if got := v.Rows(); len(got) != 3 {
		t.Errorf("expected 3 rows, got %d", len(got))
	}
	if v.Values() != nil {
		t.Error("expected nil values for a multi vector")
	}
	if v.Dimension() != 2 {
		t.Errorf("expected dimension 2, got %d", v.Dimension())
	}
}

func TestVector_AccessorsReturnCopies(t *testing.T) {
	v := Single[float32](1, 2, 3)
	v.Values()[0] = 99
	if v.Values()[0] != 1 {
		t.Error("mutating the returned slice leaked into the vector")
	}

	m := Multi([]float32{1, 2}, []float32{3, 4})
	m.Rows()[0][0] = 99
	if m.Rows()[0][0] != 1 {
		t.Error("mutating the returned matrix leaked into the vector")
	}
}

func TestVector_Validate(t *testing.T) {
	tests := []struct {
		name    string
		vector  Vector
		wantErr bool
	}{
		{"valid single", Single[float32](1, 2), false},
		{"valid multi", Multi([]float32{1, 2}, []float32{3, 4}), false},
		{"empty single", Single[float32](), true},
		{"empty multi", Multi[float32](), true},
		{"empty rows", Multi([]float32{}, []float32{}), true},
		{"ragged multi", Multi([]float32{1, 2}, []float32{3}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vector.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidInput(err) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestVector_IsZero(t *testing.T) {
	var zero Vector
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if Single[float32](1).IsZero() {
		t.Error("constructed vector should not report IsZero")
	}
}

func TestVector_Equal(t *testing.T) {
	if !Single[float32](1, 2).Equal(Single[float32](1, 2)) {
		t.Error("equal single vectors reported unequal")
	}
	if Single[float32](1, 2).Equal(Single[float32](2, 1)) {
		t.Error("different single vectors reported equal")
	}
	if Single[float32](1, 2).Equal(Multi([]float32{1, 2})) {
		t.Error("single and multi vectors reported equal")
	}
	if !Multi([]float32{1, 2}, []float32{3, 4}).Equal(Multi([]float32{1, 2}, []float32{3, 4})) {
		t.Error("equal multi vectors reported unequal")
	}
}

func TestNamedVector_Validate(t *testing.T) {
	if err := Named("title", Single[float32](1)).validate(); err != nil {
		t.Errorf("valid named vector rejected: %v", err)
	}
	if err := Named("", Single[float32](1)).validate(); err == nil {
		t.Error("empty name accepted")
	}
	if err := Named("title", Single[float32]()).validate(); err == nil {
		t.Error("empty payload accepted")
	}
}
