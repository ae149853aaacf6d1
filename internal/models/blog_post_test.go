package models

import (
	"encoding/json"
	"testing"
)

func TestParsePostStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want PostStatus
		ok   bool
	}{
		{raw: "draft", want: PostStatusDraft, ok: true},
		{raw: " Published ", want: PostStatusPublished, ok: true},
		{raw: "ARCHIVED", want: PostStatusArchived, ok: true},
		{raw: "scheduled", ok: false},
		{raw: "", ok: false},
	}
	for _, tc := range cases {
		got, err := ParsePostStatus(tc.raw)
		if tc.ok && err != nil {
			t.Fatalf("parse %q failed: %v", tc.raw, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("parse %q should fail", tc.raw)
		}
		if got != tc.want {
			t.Fatalf("parse %q want %q got %q", tc.raw, tc.want, got)
		}
	}
}

func TestTagsKeepOrderAndRejectDuplicates(t *testing.T) {
	tags := NewTags([]string{"go", " security ", "go", "", "osint"})
	if len(tags) != 3 || tags[0] != "go" || tags[1] != "security" || tags[2] != "osint" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	if tags.Add("security") {
		t.Fatalf("duplicate add should report false")
	}
	if len(tags) != 3 {
		t.Fatalf("duplicate add should not change tags: %v", tags)
	}
	if !tags.Add("privacy") || tags[3] != "privacy" {
		t.Fatalf("new tag should be appended: %v", tags)
	}
	if !tags.Remove("security") {
		t.Fatalf("remove existing tag should report true")
	}
	if tags.Remove("missing") {
		t.Fatalf("remove missing tag should report false")
	}
	want := []string{"go", "osint", "privacy"}
	for idx := range want {
		if tags[idx] != want[idx] {
			t.Fatalf("order after remove want %v got %v", want, tags)
		}
	}
}

func TestTagsValueAndScan(t *testing.T) {
	value, err := Tags{"b", "a"}.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != `["b","a"]` {
		t.Fatalf("unexpected stored value: %v", value)
	}

	var nilTags Tags
	value, err = nilTags.Value()
	if err != nil || value != "[]" {
		t.Fatalf("nil tags should store empty array, got %v %v", value, err)
	}

	var scanned Tags
	if err := scanned.Scan([]byte(`["x","y"]`)); err != nil {
		t.Fatalf("scan bytes failed: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "x" {
		t.Fatalf("unexpected scanned tags: %v", scanned)
	}
	if err := scanned.Scan(nil); err != nil || len(scanned) != 0 {
		t.Fatalf("scan nil should reset to empty, got %v %v", scanned, err)
	}
	if err := scanned.Scan("not-json"); err == nil {
		t.Fatalf("scan invalid json should fail")
	}
}

func TestBlogPostJSONShape(t *testing.T) {
	post := BlogPost{ID: "p-1", Title: "Hello", Slug: "hello", Status: PostStatusDraft, Tags: Tags{"a"}}
	raw, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "title", "slug", "status", "tags", "published_at", "author_id"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("json should contain %q: %s", key, string(raw))
		}
	}
	if post.IsPublished() {
		t.Fatalf("draft should not be published")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Editor@Example.COM "); got != "editor@example.com" {
		t.Fatalf("unexpected normalized email: %s", got)
	}
}
