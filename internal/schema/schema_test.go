package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/model"
)

// mustDecode decodes src or fails the test.
func mustDecode(t *testing.T, src string) Value {
	t.Helper()

	v, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", src, err)
	}
	return v
}

// mustJSON renders v as JSON or fails the test.
func mustJSON(t *testing.T, v Value) string {
	t.Helper()

	data, err := MarshalJSON(v)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	return string(data)
}

// customValue is a Value variant unknown to Extract.
type customValue struct{}

func (customValue) isValue() {}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("keeps object member order", func(t *testing.T) {
		t.Parallel()

		v := mustDecode(t, `{"zeta": 1, "alpha": 2, "mid": 3}`)
		obj, ok := v.(Object)
		if !ok {
			t.Fatalf("expected Object, got %T", v)
		}
		want := []string{"zeta", "alpha", "mid"}
		if got := obj.Keys(); !reflect.DeepEqual(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
	})

	t.Run("duplicate key keeps first position and last value", func(t *testing.T) {
		t.Parallel()

		v := mustDecode(t, `{"a": 1, "b": 2, "a": "x"}`)
		obj := v.(Object)
		if got := obj.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("Keys() = %v, want [a b]", got)
		}
		got, ok := obj.Get("a")
		if !ok || got != String("x") {
			t.Errorf("Get(a) = %v, %v; want x, true", got, ok)
		}
	})

	t.Run("keeps number literals", func(t *testing.T) {
		t.Parallel()

		v := mustDecode(t, `[1, -2.5, 3e10]`)
		want := Array{Number("1"), Number("-2.5"), Number("3e10")}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("Decode() = %#v, want %#v", v, want)
		}
	})

	t.Run("decodes every scalar variant", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			src  string
			want Value
		}{
			{`"hi"`, String("hi")},
			{`true`, Bool(true)},
			{`false`, Bool(false)},
			{`null`, Null{}},
			{`42`, Number("42")},
			{` {} `, Object{}},
			{`[]`, Array{}},
		}
		for _, tt := range tests {
			got := mustDecode(t, tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		}
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			``,
			`   `,
			`{`,
			`{"a": }`,
			`{"a" 1}`,
			`[1, 2`,
			`[1 2]`,
			`{} {}`,
			`{} x`,
			`{}}`,
			`tru`,
			`{'a': 1}`,
		}
		for _, src := range inputs {
			_, err := Decode([]byte(src))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode(%q) error = %v, want ErrDecode", src, err)
			}
		}
	})

	t.Run("rejects non-standard number literals", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{`NaN`, `Infinity`, `-Infinity`, `{"x": NaN}`, `[1, Infinity]`} {
			_, err := Decode([]byte(src))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode(%q) error = %v, want ErrDecode", src, err)
			}
		}
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("maps each leaf type to its placeholder", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			in   Value
			want Value
		}{
			{"string", String("Beff"), String("string")},
			{"empty string", String(""), String("string")},
			{"true", Bool(true), Bool(true)},
			{"false", Bool(false), Bool(true)},
			{"integer", Number("42"), Number("0")},
			{"float", Number("-1.5e3"), Number("0")},
			{"null", Null{}, Null{}},
			{"nil interface", nil, Null{}},
			{"empty array", Array{}, Array{}},
			{"empty object", Object{}, Object{}},
			{"empty object with allocated members", Object{Members: []Member{}}, Object{}},
		}
		for _, tt := range tests {
			if got := Extract(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s: Extract() = %#v, want %#v", tt.name, got, tt.want)
			}
		}
	})

	t.Run("booleans never become numbers", func(t *testing.T) {
		t.Parallel()

		got := Extract(mustDecode(t, `{"flag": false}`))
		want := "{\n  \"flag\": true\n}"
		if s := mustJSON(t, got); s != want {
			t.Errorf("got %q, want %q", s, want)
		}
	})

	t.Run("array collapses to its first element", func(t *testing.T) {
		t.Parallel()

		got := Extract(mustDecode(t, `[{"a": 1}, "x", 5]`))
		want := Array{Object{Members: []Member{{Key: "a", Value: Number("0")}}}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Extract() = %#v, want %#v", got, want)
		}
	})

	t.Run("unknown variant is named by its type", func(t *testing.T) {
		t.Parallel()

		got := Extract(customValue{})
		if got != String("unknown_type_customValue") {
			t.Errorf("Extract() = %#v, want unknown_type_customValue", got)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		docs := []string{
			`{"name": "Beff", "age": 3, "tags": ["a", "b"], "nested": {"ok": false, "n": null, "list": [[1, 2], []]}}`,
			`[1, [true, {"k": "v"}]]`,
			`"plain"`,
			`{}`,
		}
		for _, src := range docs {
			once := Extract(mustDecode(t, src))
			twice := Extract(once)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("Extract is not idempotent for %s: %#v != %#v", src, once, twice)
			}
		}
	})

	t.Run("keeps keys and their order", func(t *testing.T) {
		t.Parallel()

		got := Extract(mustDecode(t, `{"b": 1, "A": 2, "ü": 3}`)).(Object)
		if keys := got.Keys(); !reflect.DeepEqual(keys, []string{"b", "A", "ü"}) {
			t.Errorf("Keys() = %v", keys)
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("indents with two spaces and omits trailing newline", func(t *testing.T) {
		t.Parallel()

		v := Extract(mustDecode(t, `{"name":"Beff","age":3,"tags":["a","b"],"active":false,"extra":null,"nested":{"x":1.5,"y":[],"z":{}}}`))
		want := `{
  "name": "string",
  "age": 0,
  "tags": [
    "string"
  ],
  "active": true,
  "extra": null,
  "nested": {
    "x": 0,
    "y": [],
    "z": {}
  }
}`
		if got := mustJSON(t, v); got != want {
			t.Errorf("MarshalJSON() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("escapes characters outside printable ASCII", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			in   string
			want string
		}{
			{"café", `"caf\u00e9"`},
			{"日本", `"\u65e5\u672c"`},
			{"😀", `"\ud83d\ude00"`},
			{"a\"b\\c", `"a\"b\\c"`},
			{"\n\r\t\b\f", `"\n\r\t\b\f"`},
			{"\x01\x7f", `"\u0001\u007f"`},
			{"</tag>", `"</tag>"`},
		}
		for _, tt := range tests {
			if got := mustJSON(t, String(tt.in)); got != tt.want {
				t.Errorf("MarshalJSON(%q) = %s, want %s", tt.in, got, tt.want)
			}
		}
	})

	t.Run("escapes non-ASCII keys", func(t *testing.T) {
		t.Parallel()

		v := Object{Members: []Member{{Key: "名前", Value: String("string")}}}
		want := "{\n  \"\\u540d\\u524d\": \"string\"\n}"
		if got := mustJSON(t, v); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("rejects unknown variants", func(t *testing.T) {
		t.Parallel()

		if _, err := MarshalJSON(Array{customValue{}}); err == nil {
			t.Error("expected an error for an unknown variant")
		}
	})
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	t.Run("keeps key order with two-space indentation", func(t *testing.T) {
		t.Parallel()

		v := Extract(mustDecode(t, `{"a": "x", "b": [1, 2], "c": {}, "d": null, "e": false, "f": {"g": []}}`))
		data, err := MarshalYAML(v)
		if err != nil {
			t.Fatalf("MarshalYAML failed: %v", err)
		}
		want := "a: string\nb:\n  - 0\nc: {}\nd: null\ne: true\nf:\n  g: []\n"
		if string(data) != want {
			t.Errorf("MarshalYAML() =\n%s\nwant\n%s", data, want)
		}
	})

	t.Run("quotes strings that would read as another type", func(t *testing.T) {
		t.Parallel()

		v := Object{Members: []Member{{Key: "true", Value: String("123")}}}
		data, err := MarshalYAML(v)
		if err != nil {
			t.Fatalf("MarshalYAML failed: %v", err)
		}
		if !strings.Contains(string(data), `"123"`) {
			t.Errorf("expected quoted string scalar, got %s", data)
		}
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	if _, err := Marshal(Null{}, "toml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
	data, err := Marshal(Null{}, config.FormatJSON)
	if err != nil || string(data) != "null" {
		t.Errorf("Marshal(json) = %q, %v", data, err)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("strips a UTF-8 byte order mark", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bom.json")
		if err := os.WriteFile(path, []byte("\xef\xbb\xbf{\"a\": 1}"), 0o600); err != nil {
			t.Fatal(err)
		}
		v, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if _, ok := v.(Object); !ok {
			t.Errorf("expected Object, got %T", v)
		}
	})

	t.Run("converts UTF-16 with a byte order mark", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "utf16.json")
		// UTF-16LE BOM followed by `[1]`.
		data := []byte{0xff, 0xfe, '[', 0, '1', 0, ']', 0}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}
		v, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reflect.DeepEqual(v, Array{Number("1")}) {
			t.Errorf("Load() = %#v", v)
		}
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("rejects invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "latin1.json")
		if err := os.WriteFile(path, []byte("{\"caf\xe9\": 1}"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := ReadFile(path)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("expected ErrInvalidEncoding, got %v", err)
		}
		if errors.Is(err, ErrDecode) || errors.Is(err, ErrFileNotFound) {
			t.Errorf("invalid encoding must be an unexpected error, got %v", err)
		}
	})
}

func TestProcess(t *testing.T) {
	t.Parallel()

	newOpts := func(dir string) config.SchemaOptions {
		return config.SchemaOptions{
			Input:       filepath.Join(dir, "beff.json"),
			Output:      filepath.Join(dir, "beff_schema.json"),
			Format:      config.FormatJSON,
			Concurrency: 1,
		}
	}

	t.Run("writes the schema", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opts := newOpts(dir)
		if err := os.WriteFile(opts.Input, []byte(`{"name": "Beff", "level": 9}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := Process(opts); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		got, err := os.ReadFile(opts.Output)
		if err != nil {
			t.Fatal(err)
		}
		want := "{\n  \"name\": \"string\",\n  \"level\": 0\n}"
		if string(got) != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("creates the output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opts := newOpts(dir)
		opts.Output = filepath.Join(dir, "out", "nested", "schema.yaml")
		opts.Format = config.FormatYAML
		if err := os.WriteFile(opts.Input, []byte(`{"ok": true}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := Process(opts); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		got, err := os.ReadFile(opts.Output)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "ok: true\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("missing input writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opts := newOpts(dir)
		err := Process(opts)
		if !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("expected ErrFileNotFound, got %v", err)
		}
		if _, err := os.Stat(opts.Output); !os.IsNotExist(err) {
			t.Error("output must not be created")
		}
	})

	t.Run("invalid JSON writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opts := newOpts(dir)
		if err := os.WriteFile(opts.Input, []byte(`{"name": `), 0o600); err != nil {
			t.Fatal(err)
		}
		err := Process(opts)
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("expected ErrDecode, got %v", err)
		}
		if _, err := os.Stat(opts.Output); !os.IsNotExist(err) {
			t.Error("output must not be created")
		}
	})

	t.Run("invalid JSON leaves an existing output untouched", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opts := newOpts(dir)
		if err := os.WriteFile(opts.Input, []byte(`not json`), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(opts.Output, []byte("previous"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := Process(opts); !errors.Is(err, ErrDecode) {
			t.Fatalf("expected ErrDecode, got %v", err)
		}
		got, err := os.ReadFile(opts.Output)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "previous" {
			t.Errorf("output was modified: %q", got)
		}
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want model.RunStatus
	}{
		{nil, model.RunSuccess},
		{fmt.Errorf("x: %w", ErrFileNotFound), model.RunNotFound},
		{fmt.Errorf("%w: eof", ErrDecode), model.RunDecodeError},
		{ErrInvalidEncoding, model.RunFailed},
		{errors.New("disk full"), model.RunFailed},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
