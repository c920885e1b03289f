package resolve

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"nativestyle/config"
	"nativestyle/render"
	"nativestyle/state"
	"nativestyle/style"
)

const testDocument = `
styles:
  box:
    padding: 4px 8px
    transform: translateX(10px)
tree:
  tag: div
  style: box
`

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return &state.LocalEnv{Cfg: cfg, Log: zaptest.NewLogger(t)}
}

func testOptions(env *state.LocalEnv, format config.OutputFormat) options {
	return options{format: format, indent: 2, base: env.BaseContext()}
}

func TestEncode(t *testing.T) {
	el := &render.Element{
		Tag: "div",
		Style: style.StyleMap{
			"paddingTop": 4.0,
			"transform":  []style.TransformOp{{Name: "translateX", Value: 10.0}},
		},
		Children: []*render.Element{{Tag: "span", Text: "Hi"}},
	}

	tests := []struct {
		format config.OutputFormat
		want   string
	}{
		{config.OutputFormatYaml, "tag: div\nstyle:\n  paddingTop: 4\n  transform:\n    - translateX: 10\nchildren:\n  - tag: span\n    text: Hi\n"},
		{config.OutputFormatJson, "{\n  \"tag\": \"div\",\n  \"style\": {\n    \"paddingTop\": 4,\n    \"transform\": [\n      {\n        \"translateX\": 10\n      }\n    ]\n  },\n  \"children\": [\n    {\n      \"tag\": \"span\",\n      \"text\": \"Hi\"\n    }\n  ]\n}\n"},
		{config.OutputFormatTree, "<div>\n  paddingTop: 4\n  transform: [translateX(10)]\n  <span>\n    #text: \"Hi\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, el, tt.format, 2); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Encode():\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestProcessFile(t *testing.T) {
	env := testEnv(t)
	src := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(src, []byte(testDocument), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := processFile(env, src, "doc.yaml", &buf, testOptions(env, config.OutputFormatYaml), env.Log); err != nil {
		t.Fatalf("processFile() error = %v", err)
	}
	for _, want := range []string{"paddingTop: 4", "paddingRight: 8", "translateX: 10", "flexDirection: column"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output misses %q:\n%s", want, buf.String())
		}
	}
}

func TestProcess_DebugReport(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	conf := config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	src := filepath.Join(dir, "styled.yaml")
	doc := "stylesheet: |\n  .card { color: red; margin: 2px }\ntree:\n  tag: div\n  style: card\n"
	if err := os.WriteFile(src, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := process(context.Background(), env, src, filepath.Join(dir, "out.yaml"), testOptions(env, config.OutputFormatYaml), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(rpt.Name())
	if err != nil {
		t.Fatalf("report is not readable: %v", err)
	}
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"MANIFEST", "source/styled.yaml", "result/styled.yaml", "stylesheet/styled.css"} {
		if !names[want] {
			t.Errorf("report misses %s, has %v", want, names)
		}
	}
}

func TestProcess_SingleFileToDirectory(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.yml")
	if err := os.WriteFile(src, []byte(testDocument), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	if err := process(context.Background(), env, src, out, testOptions(env, config.OutputFormatJson), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "doc.json"))
	if err != nil {
		t.Fatalf("result not written: %v", err)
	}
	if !strings.Contains(string(data), `"paddingLeft": 8`) {
		t.Errorf("json result:\n%s", data)
	}
}

func TestProcess_Directory(t *testing.T) {
	env := testEnv(t)
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.MkdirAll(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"a.yaml":        testDocument,
		"nested/b.yaml": testDocument,
		"notes.txt":     "ignored",
		"broken.yaml":   "tree:\n  tag: div\n  style: missing\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	err := process(context.Background(), env, src, dst, testOptions(env, config.OutputFormatTree), env.Log)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 documents failed") {
		t.Fatalf("process() error = %v, want one failure", err)
	}
	for _, name := range []string{"a.txt", "nested/b.txt"} {
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "<div>\n") {
			t.Errorf("%s = %q", name, data)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "broken.txt")); err == nil {
		t.Error("failed document should not produce output")
	}
}

func TestProcess_Archive(t *testing.T) {
	env := testEnv(t)
	// no extension on purpose, archives are detected by content
	src := filepath.Join(t.TempDir(), "bundle")
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"screens/home.yaml": testDocument,
		"screens/list.yml":  testDocument,
		"readme.txt":        "ignored",
		"broken.yaml":       "tree: [",
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	dst := t.TempDir()
	err = process(context.Background(), env, src, dst, testOptions(env, config.OutputFormatYaml), env.Log)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 documents failed") {
		t.Fatalf("process() error = %v, want one failure", err)
	}
	for _, name := range []string{"screens/home.yaml", "screens/list.yaml"} {
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), "paddingTop: 4") {
			t.Errorf("%s = %q", name, data)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "broken.yaml")); err == nil {
		t.Error("failed document should not produce output")
	}
}

func TestProcess_Cancelled(t *testing.T) {
	env := testEnv(t)
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.yaml"), []byte(testDocument), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := process(ctx, env, src, t.TempDir(), testOptions(env, config.OutputFormatYaml), env.Log); err != context.Canceled {
		t.Errorf("process() error = %v, want context.Canceled", err)
	}
}

func TestProcess_MissingSource(t *testing.T) {
	env := testEnv(t)
	err := process(context.Background(), env, filepath.Join(t.TempDir(), "none.yaml"), "", testOptions(env, config.OutputFormatYaml), env.Log)
	if err == nil || !strings.Contains(err.Error(), "input source was not found") {
		t.Errorf("process() error = %v", err)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in     string
		format config.OutputFormat
		want   string
	}{
		{"doc.yaml", config.OutputFormatJson, "doc.json"},
		{"dir/doc.yml", config.OutputFormatYaml, "dir/doc.yaml"},
		{"doc", config.OutputFormatTree, "doc.txt"},
	}
	for _, tt := range tests {
		if got := outputName(tt.in, tt.format); got != tt.want {
			t.Errorf("outputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	var buf bytes.Buffer
	if err := tokenize(&buf, []string{"1px", "a"}); err != nil {
		t.Fatalf("tokenize() error = %v", err)
	}
	want := "\"1px\"\nword [0:3] \"1px\"\n\n\"a\"\nword [0:1] \"a\"\n"
	if got := buf.String(); got != want {
		t.Errorf("tokenize():\ngot:\n%s\nwant:\n%s", got, want)
	}
}
