package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func lines(b []byte) []string {
	return strings.Split(string(b), "\n")
}

func TestKeyValueFillsWidth(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total:", "130.00")
	got := lines(doc.Bytes())[0][2:]
	if len(got) != 20 || !strings.HasPrefix(got, "Total:") || !strings.HasSuffix(got, "130.00") {
		t.Fatalf("line = %q", got)
	}
}

func TestKeyValueClipsLongKey(t *testing.T) {
	doc := NewDocument(16)
	doc.KeyValue("A very long customer name", "12.00")
	got := lines(doc.Bytes())[0][2:]
	if len(got) != 16 || !strings.HasSuffix(got, " 12.00") {
		t.Fatalf("line = %q", got)
	}
}

func TestTextClipsToWidth(t *testing.T) {
	doc := NewDocument(8)
	doc.Text("0123456789")
	if !bytes.Contains(doc.Bytes(), []byte("01234567\n")) || bytes.Contains(doc.Bytes(), []byte("89")) {
		t.Fatalf("bytes = %q", doc.Bytes())
	}
}

func TestFromConfig(t *testing.T) {
	p, err := FromConfig("none", "", "")
	if err != nil {
		t.Fatalf("FromConfig none: %v", err)
	}
	rec, ok := p.(*Recorder)
	if !ok {
		t.Fatalf("none should give a recorder, got %T", p)
	}
	_ = rec.Print(context.Background(), []byte("slip"))
	if jobs := rec.Jobs(); len(jobs) != 1 || string(jobs[0]) != "slip" {
		t.Fatalf("jobs = %q", jobs)
	}

	if _, err := FromConfig("usb", "", ""); err == nil {
		t.Fatalf("usb without a path should fail")
	}
	if _, err := FromConfig("bluetooth", "", ""); err == nil {
		t.Fatalf("unknown type should fail")
	}
}
