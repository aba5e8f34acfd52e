package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Step("Successfully got config data")
	p.Detail("Api Url", "http://x/spec.json")
	p.WarnMsg("config is missing gen_type")
	p.ErrorMsg(errors.New("Output is not a folder"), "remove the file first")
	p.SuccessMsg("")

	want := strings.Join([]string{
		"Successfully got config data",
		"  → Api Url: http://x/spec.json",
		"Warning: config is missing gen_type",
		"Error: Output is not a folder",
		"  Hint: remove the file first",
		"Success",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("non-tty output must not contain escape codes")
	}
}

func TestProgressNonTTY(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	called := false
	err := p.Progress("Trying to get api info from server", func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("action was not run")
	}
	if buf.String() != "Trying to get api info from server\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}

	boom := errors.New("boom")
	if err := p.Progress("again", func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected action error, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{234 * time.Millisecond, "234ms"},
		{1200 * time.Millisecond, "1.2s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%s) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		b    int64
		want string
	}{
		{890, "890B"},
		{1229, "1.2KB"},
		{3565158, "3.4MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.b); got != tt.want {
			t.Errorf("FormatBytes(%d) = %s, want %s", tt.b, got, tt.want)
		}
	}
}

func TestProgressTTYPrintsTitle(t *testing.T) {
	orig := spin
	spin = func(title string, action func()) error {
		action()
		return nil
	}
	defer func() { spin = orig }()

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"success", nil, false},
		{"failure", errors.New("Can't get api info"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf, true)

			err := p.Progress("Trying to get api info from server", func() error { return tt.err })
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != "Trying to get api info from server\n" {
				t.Errorf("expected title line, got %q", buf.String())
			}
		})
	}
}
