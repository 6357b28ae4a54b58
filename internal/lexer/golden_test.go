package lexer

import (
	"os"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/tangzhangming/exprlex/internal/token"
)

type goldenToken struct {
	Kind  string `toml:"kind"`
	Value string `toml:"value"`
}

type goldenCase struct {
	Name             string        `toml:"name"`
	Expr             string        `toml:"expr"`
	Operators        []string      `toml:"operators"`
	DefaultOperators bool          `toml:"default_operators"`
	Deferred         bool          `toml:"deferred"`
	Tokens           []goldenToken `toml:"tokens"`
	Error            string        `toml:"error"`
	Offset           int           `toml:"offset"`
	Context          string        `toml:"context"`
}

type goldenFile struct {
	Cases []goldenCase `toml:"case"`
}

func loadGoldenCases(t *testing.T) []goldenCase {
	t.Helper()

	data, err := os.ReadFile("testdata/cases.toml")
	if err != nil {
		t.Fatalf("read cases: %v", err)
	}

	var file goldenFile
	if err := toml.Unmarshal(data, &file); err != nil {
		t.Fatalf("parse cases: %v", err)
	}
	if len(file.Cases) == 0 {
		t.Fatal("no cases found")
	}
	return file.Cases
}

func TestGoldenCases(t *testing.T) {
	for _, tc := range loadGoldenCases(t) {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			ops := tc.Operators
			if tc.DefaultOperators {
				ops = DefaultOperators()
			}
			var opts []Option
			if tc.Deferred {
				opts = append(opts, WithDeferredLeadingCheck())
			}

			tokens, err := Tokenize(tc.Expr, ops, opts...)

			if tc.Error != "" {
				lexErr, ok := err.(*Error)
				if !ok {
					t.Fatalf("expected %s, got %v (tokens %v)", tc.Error, err, tokens)
				}
				if lexErr.Kind.String() != tc.Error {
					t.Errorf("kind = %s, want %s", lexErr.Kind, tc.Error)
				}
				if lexErr.Offset != tc.Offset {
					t.Errorf("offset = %d, want %d", lexErr.Offset, tc.Offset)
				}
				if lexErr.Context != tc.Context {
					t.Errorf("context = %q, want %q", lexErr.Context, tc.Context)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tokens) != len(tc.Tokens) {
				t.Fatalf("tokens = %v, want %d tokens", tokens, len(tc.Tokens))
			}
			for i, want := range tc.Tokens {
				kind, ok := token.LookupKind(want.Kind)
				if !ok {
					t.Fatalf("bad kind %q in case file", want.Kind)
				}
				if tokens[i].Kind != kind || tokens[i].Value != want.Value {
					t.Errorf("token[%d] = %v, want %s(%q)", i, tokens[i], want.Kind, want.Value)
				}
			}
		})
	}
}
