package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

type input struct {
	Corpus      []string `json:"corpus"      validate:"required,min=1,dive,nonblank"`
	Highlighted []string `json:"highlighted" validate:"required,min=1"`
	MaxDepth    int      `json:"max_depth"   validate:"min=0,max=8"`
	Note        string   `json:"-"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_OK(t *testing.T) {
	in, err := ParseJSON[input](post(`{"corpus":["Owl Amulet"],"highlighted":["Owl Amulet"],"max_depth":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.MaxDepth != 3 || in.Corpus[0] != "Owl Amulet" {
		t.Fatalf("decoded = %+v", in)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"empty body", ``, perr.ErrorCodeJSON, "", "empty body"},
		{"malformed", `{"corpus":`, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", `{"corpus":["a"],"highlighted":["a"],"depth":1}`, perr.ErrorCodeJSON, "", "unknown field"},
		{"trailing data", `{"corpus":["a"],"highlighted":["a"]} {}`, perr.ErrorCodeJSON, "", "trailing"},
		{"missing required", `{"corpus":["a"]}`, perr.ErrorCodeValidation, "highlighted", "required"},
		{"min on slice", `{"corpus":[],"highlighted":["a"]}`, perr.ErrorCodeValidation, "corpus", "must be at least 1"},
		{"max on int", `{"corpus":["a"],"highlighted":["a"],"max_depth":9}`, perr.ErrorCodeValidation, "max_depth", "must be at most 8"},
		{"blank element", `{"corpus":["  "],"highlighted":["a"]}`, perr.ErrorCodeValidation, "corpus[0]", "must not be blank"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[input](post(c.body))
			if !perr.IsCode(err, c.code) {
				t.Fatalf("code = %v, want %v (err %v)", perr.CodeOf(err), c.code, err)
			}
			w := perr.WireFrom(err)
			if w.Field != c.field {
				t.Fatalf("field = %q, want %q", w.Field, c.field)
			}
			if !strings.Contains(w.Message, c.msg) {
				t.Fatalf("message %q lacks %q", w.Message, c.msg)
			}
		})
	}
}

func TestParseJSON_NonStructTarget(t *testing.T) {
	_, err := ParseJSON[[]string](post(`["a"]`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected json error, got %v", err)
	}
}

func TestFieldMessage_PlainError(t *testing.T) {
	if f, m := FieldMessage(nil); f != "" || m != "" {
		t.Fatalf("nil: %q %q", f, m)
	}
	if f, m := FieldMessage(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("plain: %q %q", f, m)
	}
}
