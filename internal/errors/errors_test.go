package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E101")
	if err.Code != "E101" || err.Category != CategoryConfig {
		t.Errorf("New(E101) = %+v", err)
	}
	if !strings.Contains(err.Error(), "E101") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" || err.Message != "unknown error" {
		t.Errorf("New(E999) = %+v", err)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := New("E201").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestFormat(t *testing.T) {
	err := New("E102").
		WithDetail("line 3: trailing comma").
		Wrap(stderrors.New("invalid character"))
	out := err.Format()

	for _, want := range []string{"E102", "line 3", "cause:", "hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E301") != nil {
		t.Error("FromError(nil) != nil")
	}
	orig := New("E302")
	if got := FromError(orig, "E301"); got != orig {
		t.Error("FromError re-wrapped a coded error")
	}
	cause := stderrors.New("unexpected EOF")
	got := FromError(cause, "E302")
	if got.Code != "E302" || !stderrors.Is(got, cause) {
		t.Errorf("FromError = %+v", got)
	}
}
