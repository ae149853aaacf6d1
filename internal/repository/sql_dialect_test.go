package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, []string{"title", " ", "slug"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "title LIKE ? OR slug LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestBuildLikeConditionPostgresUsesILike(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"title"})
	if condition != "title ILIKE ?" {
		t.Fatalf("postgres condition mismatch, got %s", condition)
	}
}

func TestJSONArrayContainsConditionSQLite(t *testing.T) {
	condition, arg := jsonArrayContainsConditionByDialect("sqlite", "tags", "osint")
	if !strings.Contains(condition, "json_each(tags)") {
		t.Fatalf("sqlite condition should use json_each, got %s", condition)
	}
	if arg != "osint" {
		t.Fatalf("sqlite arg want osint got %v", arg)
	}
}

func TestJSONArrayContainsConditionPostgres(t *testing.T) {
	condition, arg := jsonArrayContainsConditionByDialect("postgres", "tags", "osint")
	if condition != "tags::jsonb @> ?::jsonb" {
		t.Fatalf("postgres condition mismatch, got %s", condition)
	}
	if arg != `["osint"]` {
		t.Fatalf("postgres arg want [\"osint\"] got %v", arg)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
