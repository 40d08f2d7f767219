package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testRefData = `
regions: [Moscow]
vehicle_marks: [KAMAZ]
accounts:
  - login: demo
    password: secret
  - login: debtor
    password: owed
    negative_balance: true
`

func writeRefData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refdata.yaml")
	if err := os.WriteFile(path, []byte(testRefData), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeLines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var recs []map[string]any
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func TestGenerateJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{
		"generate", "-seed", "1", "-type", "RT_CAR", "-count", "3", "-workers", "2",
	}, &out)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	recs := decodeLines(t, &out)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for _, rec := range recs {
		plate, _ := rec["grnz"].(string)
		if plate == "" {
			t.Errorf("record without grnz: %v", rec)
		}
		if rec["vehicle_mark"] != nil {
			t.Errorf("vehicle_mark = %v, want null with an empty store", rec["vehicle_mark"])
		}
	}
}

func TestGenerateWithRefData(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{
		"generate", "-refdata", writeRefData(t), "-type", "RT_REAL_ACCOUNT", "-mod", "negative_balance",
	}, &out)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	recs := decodeLines(t, &out)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	want := map[string]any{"login": "debtor", "password": "owed"}
	if diff := cmp.Diff(want, recs[0]["account_lk"]); diff != "" {
		t.Errorf("account_lk mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	var out bytes.Buffer
	err := run(context.Background(), []string{
		"generate", "-type", "RT_LEGAL_PERSON", "-format", "yaml", "-o", path,
	}, &out)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout should be empty when -o is set, got %q", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "first_name:") {
		t.Errorf("YAML output should start with first_name, got %q", data)
	}
	if !strings.Contains(string(data), "owner_type: legal entity") {
		t.Errorf("YAML output missing owner_type: %s", data)
	}
}

func TestSeedThenGenerate(t *testing.T) {
	dir := t.TempDir()
	stores := []struct {
		kind string
		dsn  string
	}{
		{"bolt", filepath.Join(dir, "refdata.db")},
		{"sqlite", filepath.Join(dir, "refdata.sqlite")},
	}

	for _, st := range stores {
		t.Run(st.kind, func(t *testing.T) {
			ctx := context.Background()
			if err := run(ctx, []string{"seed", "-store", st.kind, "-dsn", st.dsn, "-file", writeRefData(t)}, &bytes.Buffer{}); err != nil {
				t.Fatalf("seed failed: %v", err)
			}

			var out bytes.Buffer
			err := run(ctx, []string{"generate", "-store", st.kind, "-dsn", st.dsn, "-type", "RT_CAR_SAFE"}, &out)
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			recs := decodeLines(t, &out)
			if len(recs) != 1 || recs[0]["vehicle_mark"] != "KAMAZ" {
				t.Errorf("records = %v, want one KAMAZ vehicle", recs)
			}
		})
	}
}

func TestTemplates(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"templates", "-v"}, &out); err != nil {
		t.Fatalf("templates failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"RT_CAR_SAFE", "UNIQUE", "RT_REAL_ACCOUNT_NEGATIVE_BALANCE", "account_lk"} {
		if !strings.Contains(text, want) {
			t.Errorf("templates output missing %q:\n%s", want, text)
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"no command", nil, errUsage},
		{"unknown command", []string{"frobnicate"}, errUsage},
		{"missing type", []string{"generate"}, nil},
		{"bad count", []string{"generate", "-type", "RT_CAR", "-count", "0"}, nil},
		{"bad format", []string{"generate", "-type", "RT_CAR", "-format", "xml"}, nil},
		{"unknown store", []string{"generate", "-type", "RT_CAR", "-store", "redis"}, errUnknownStore},
		{"bad locale", []string{"generate", "-type", "RT_CAR", "-locale", "!!"}, nil},
		{"postgres without dsn", []string{"generate", "-type", "RT_CAR", "-store", "postgres"}, nil},
		{"seed without file", []string{"seed"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestModList(t *testing.T) {
	var m modList
	for _, v := range []string{"female", "legal, llc", ""} {
		if err := m.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(modList{"female", "legal", "llc"}, m); diff != "" {
		t.Errorf("modList mismatch (-want +got):\n%s", diff)
	}
	if m.String() != "female,legal,llc" {
		t.Errorf("String() = %q", m.String())
	}
}
