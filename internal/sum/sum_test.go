package sum

import (
	"errors"
	"testing"

	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/typesystem"
)

var (
	intType    = typesystem.Con("int")
	longType   = typesystem.Con("long")
	doubleType = typesystem.Con("double")
	stringType = typesystem.Std("string")
)

func mustUnion(t *testing.T, alts ...typesystem.Type) *Union {
	t.Helper()
	u, err := NewUnion(alts...)
	if err != nil {
		t.Fatalf("NewUnion failed: %v", err)
	}
	return u
}

func TestNewUnionRejects(t *testing.T) {
	tests := []struct {
		name string
		alts []typesystem.Type
		want error
	}{
		{"empty", nil, ErrNoAlternatives},
		{"placeholder", []typesystem.Type{intType, typesystem.Ptr(typesystem.Self)}, ErrOpenAlternative},
		{"reference", []typesystem.Type{typesystem.Ref(intType)}, ErrUnsupported},
		{"unbounded array", []typesystem.Type{typesystem.Unbounded(intType)}, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewUnion(tt.alts...); !errors.Is(err, tt.want) {
				t.Errorf("NewUnion error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	u := mustUnion(t, intType, stringType, longType, typesystem.Con("float"))

	tests := []struct {
		name    string
		obj     object.Object
		want    int
		wantErr error
	}{
		{"exact beats conversion", &object.Integer{Value: 1}, 0, nil},
		{"string", &object.String{Value: "a"}, 1, nil},
		{"conversion", &object.Float{Value: 1}, 3, nil},
		{"no match", &object.Boolean{Value: true}, NPos, ErrNoAlternative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.Select(tt.obj)
			if !errors.Is(err, tt.wantErr) || got != tt.want {
				t.Errorf("Select = %d, %v; want %d, %v", got, err, tt.want, tt.wantErr)
			}
		})
	}

	amb := mustUnion(t, longType, longType)
	if _, err := amb.Select(&object.Integer{Value: 1}); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("ambiguous error = %v", err)
	}
	if _, err := amb.IndexOf(longType); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("IndexOf ambiguous error = %v", err)
	}
	v, err := NewAt(amb, 1, &object.Integer{Value: 1})
	if err != nil || v.Index() != 1 {
		t.Errorf("NewAt = %v, %v", v, err)
	}
}

func TestGet(t *testing.T) {
	u := mustUnion(t, intType, stringType)
	v, err := New(u, &object.String{Value: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Index() != 1 || !v.HoldsAlternative(1) || v.HoldsAlternative(0) {
		t.Fatalf("index = %d", v.Index())
	}
	if got, err := v.Get(1); err != nil || got.(*object.String).Value != "hi" {
		t.Errorf("Get(1) = %v, %v", got, err)
	}
	if _, err := v.Get(0); !errors.Is(err, ErrInvalidAccess) {
		t.Errorf("Get(0) error = %v", err)
	}
	if _, err := v.Get(7); !errors.Is(err, ErrInvalidAccess) {
		t.Errorf("Get(7) error = %v", err)
	}
	if _, ok := v.GetIf(0); ok {
		t.Errorf("GetIf(0) reported a value")
	}
}

func TestAssignKeepsStateOnFailure(t *testing.T) {
	u := mustUnion(t, intType, stringType)
	v, _ := New(u, &object.Integer{Value: 3})

	if err := v.Assign(&object.Boolean{Value: true}); !errors.Is(err, ErrNoAlternative) {
		t.Fatalf("Assign error = %v", err)
	}
	if got, _ := v.Get(0); got.(*object.Integer).Value != 3 {
		t.Errorf("failed Assign changed the value")
	}
	if err := v.Assign(&object.String{Value: "x"}); err != nil || v.Index() != 1 {
		t.Errorf("Assign = %v, index %d", err, v.Index())
	}

	other, _ := New(mustUnion(t, doubleType), &object.Float{Value: 1})
	if err := v.AssignValue(other); !errors.Is(err, ErrUnionMismatch) {
		t.Errorf("AssignValue error = %v", err)
	}
}

func TestEmplaceValuelessByException(t *testing.T) {
	u := mustUnion(t, intType, stringType)
	v, _ := New(u, &object.Integer{Value: 3})
	boom := errors.New("boom")

	err := v.Emplace(1, func() (object.Object, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Emplace error = %v", err)
	}
	if !v.ValuelessByException() || v.Index() != NPos {
		t.Fatalf("expected valueless, index = %d", v.Index())
	}
	if _, err := v.Get(0); !errors.Is(err, ErrEmptyVariant) {
		t.Errorf("Get error = %v", err)
	}
	if _, err := Visit(v, func(object.Object) int { return 0 }, func(object.Object) int { return 1 }); !errors.Is(err, ErrEmptyVariant) {
		t.Errorf("Visit error = %v", err)
	}

	healthy, _ := New(u, &object.Integer{Value: 0})
	if c, _ := v.Compare(healthy); c != -1 {
		t.Errorf("valueless must order first, got %d", c)
	}

	if err := v.Assign(&object.Integer{Value: 4}); err != nil || v.Index() != 0 {
		t.Errorf("reassignment did not recover: %v", err)
	}

	if err := v.Emplace(1, func() (object.Object, error) { return &object.Integer{Value: 1}, nil }); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Emplace with wrong payload error = %v", err)
	}
	if err := v.Emplace(1, func() (object.Object, error) { return &object.String{Value: "ok"}, nil }); err != nil || v.Index() != 1 {
		t.Errorf("Emplace = %v, index %d", err, v.Index())
	}
}

func TestVisitDispatchesActivePosition(t *testing.T) {
	u := mustUnion(t, intType, stringType, doubleType)
	values := []object.Object{&object.Integer{Value: 1}, &object.String{Value: "s"}, &object.Float{Value: 1.5}}
	arms := []func(object.Object) int{
		func(object.Object) int { return 0 },
		func(object.Object) int { return 1 },
		func(object.Object) int { return 2 },
	}
	for want, obj := range values {
		v, _ := New(u, obj)
		got, err := Visit(v, arms...)
		if err != nil || got != want {
			t.Errorf("Visit(%s) = %d, %v; want %d", v, got, err, want)
		}
	}
	v, _ := New(u, values[0])
	if _, err := Visit(v, arms[:2]...); !errors.Is(err, ErrNonExhaustive) {
		t.Errorf("non-exhaustive error = %v", err)
	}
}

func TestEqualityIncludesPosition(t *testing.T) {
	u := mustUnion(t, intType, intType)
	a, _ := NewAt(u, 0, &object.Integer{Value: 5})
	b, _ := NewAt(u, 1, &object.Integer{Value: 5})
	c, _ := NewAt(u, 0, &object.Integer{Value: 5})

	if a.Equal(b) {
		t.Errorf("equal payloads at different positions must differ")
	}
	if !a.Equal(c) || a.Hash() != c.Hash() {
		t.Errorf("equal values must be equal and hash alike")
	}
	if a.Hash() == b.Hash() {
		t.Errorf("position not mixed into hash")
	}
	if cmp, _ := a.Compare(b); cmp != -1 {
		t.Errorf("Compare = %d, want -1", cmp)
	}
}

func TestSwap(t *testing.T) {
	u := mustUnion(t, intType, stringType)
	a, _ := New(u, &object.Integer{Value: 1})
	b, _ := New(u, &object.String{Value: "b"})
	if err := a.Swap(&b); err != nil {
		t.Fatal(err)
	}
	if a.Index() != 1 || b.Index() != 0 {
		t.Errorf("Swap: %s %s", a, b)
	}
}
