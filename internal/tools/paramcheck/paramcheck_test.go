package paramcheck

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const doc = `{
  "time_flash": {"value": 0.25, "type": "float", "default": 0.25, "section": "task_config"},
  "acq_mode": {"value": "EEG", "type": "choice", "default": "EEG", "choices": ["EEG", "EEG/LSL"], "section": "acq_config"}
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parameters.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("paramcheck", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	return ParseConfig(fs, args)
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Config
		wantErr bool
	}{
		{name: "path_only", args: []string{"p.json"}, want: Config{Path: "p.json"}},
		{name: "list", args: []string{"-list", "p.json"}, want: Config{Path: "p.json", List: true}},
		{
			name: "sets",
			args: []string{"-w", "-set", "time_flash=0.3", "-set", "acq_mode=EEG/LSL", "p.json"},
			want: Config{Path: "p.json", Write: true, Sets: []string{"time_flash=0.3", "acq_mode=EEG/LSL"}},
		},
		{name: "no_path", args: nil, wantErr: true},
		{name: "two_paths", args: []string{"a.json", "b.json"}, wantErr: true},
		{name: "set_without_write", args: []string{"-set", "a=1", "p.json"}, wantErr: true},
		{name: "set_without_equals", args: []string{"-w", "-set", "a", "p.json"}, wantErr: true},
		{name: "unknown_flag", args: []string{"-bogus", "p.json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Path != tt.want.Path || got.List != tt.want.List || got.Write != tt.want.Write {
				t.Errorf("ParseConfig() = %+v, want %+v", got, tt.want)
			}
			if strings.Join(got.Sets, ",") != strings.Join(tt.want.Sets, ",") {
				t.Errorf("Sets = %v, want %v", got.Sets, tt.want.Sets)
			}
		})
	}
}

func TestRun_Check(t *testing.T) {
	path := writeDoc(t, doc)
	var out bytes.Buffer
	if err := Run(Config{Path: path}, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "2 parameters ok") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_List(t *testing.T) {
	path := writeDoc(t, doc)
	var out bytes.Buffer
	if err := Run(Config{Path: path, List: true}, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, 2 rows and summary:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "time_flash") || !strings.Contains(lines[1], "task_config") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestRun_Invalid(t *testing.T) {
	path := writeDoc(t, `{"time_flash": {"value": "soon", "type": "float", "default": 0.25}}`)
	if err := Run(Config{Path: path}, &bytes.Buffer{}); err == nil {
		t.Fatal("Run() accepted an invalid document")
	}
}

func TestRun_WriteWithSets(t *testing.T) {
	path := writeDoc(t, doc)
	cfg := Config{Path: path, Write: true, Sets: []string{"time_flash=0.3", "acq_mode=EEG/LSL"}}
	if err := Run(cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "time_flash.value").Float(); got != 0.3 {
		t.Errorf("time_flash.value = %v, want 0.3", got)
	}
	if got := gjson.GetBytes(data, "acq_mode.value").String(); got != "EEG/LSL" {
		t.Errorf("acq_mode.value = %q", got)
	}
}

func TestRun_SetRejected(t *testing.T) {
	path := writeDoc(t, doc)
	tests := []struct {
		name string
		set  string
	}{
		{name: "unknown", set: "speed=3"},
		{name: "unparsable", set: "time_flash=fast"},
		{name: "not_a_choice", set: "acq_mode=MEG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Path: path, Write: true, Sets: []string{tt.set}}
			if err := Run(cfg, &bytes.Buffer{}); err == nil {
				t.Fatal("Run() accepted the assignment")
			}
			data, _ := os.ReadFile(path)
			if string(data) != doc {
				t.Error("file changed after a rejected assignment")
			}
		})
	}
}

func TestRun_NilOutput(t *testing.T) {
	if err := Run(Config{Path: "x"}, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}
